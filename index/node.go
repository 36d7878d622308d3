package index

// NodeID indexes into a tree's arena; the first allocated node has ID 0.
// nilNode (-1) is the explicit "no child/no parent" marker,
// per the Design Notes' arena-of-indices alternative to raw pointers
// (keeps the tree free of GC-visible internal pointers and makes a
// freed node's slot trivially reusable).
type NodeID int32

const nilNode NodeID = -1

type node struct {
	payload *Payload
	left    NodeID
	right   NodeID
	parent  NodeID
	balance int8 // height(right) - height(left), in [-2, 2] transiently
}

// arena owns node storage for a Tree. Freed slots are recycled via
// freeList so long-running stores with heavy churn don't grow the
// backing slice unboundedly.
type arena struct {
	nodes    []node
	freeList []NodeID
}

func (a *arena) alloc(capacity int) NodeID {
	n := node{payload: NewPayload(capacity), left: nilNode, right: nilNode, parent: nilNode}
	if len(a.freeList) > 0 {
		id := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		a.nodes[id] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

func (a *arena) free(id NodeID) {
	a.nodes[id] = node{}
	a.freeList = append(a.freeList, id)
}

func (a *arena) get(id NodeID) *node {
	return &a.nodes[id]
}
