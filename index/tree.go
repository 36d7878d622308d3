package index

import "github.com/lindadb/ldb/lv"

// Tree is the T-tree index of §4.5: an AVL-balanced binary tree whose
// nodes are capacity-K Payload buckets ordered on each tuple's primary
// key. Tree is not safe for concurrent use by itself; package store
// layers the locking and blocking semantics of §4.6 on top of it.
type Tree struct {
	arena    arena
	root     NodeID
	capacity int
	count    int
}

// NewTree constructs an empty Tree with the given per-node capacity
// (K in §4.4; DefaultCapacity if capacity <= 0).
func NewTree(capacity int) *Tree {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tree{root: nilNode, capacity: capacity}
}

// Len returns the number of tuples currently stored.
func (t *Tree) Len() int { return t.count }

func (t *Tree) node(id NodeID) *node { return t.arena.get(id) }
func (t *Tree) payload(id NodeID) *Payload { return t.arena.get(id).payload }

func (t *Tree) newLeaf(entry lv.Tuple, parent NodeID) NodeID {
	id := t.arena.alloc(t.capacity)
	t.payload(id).TryInsert(entry)
	t.node(id).parent = parent
	return id
}

// Insert adds tuple to the tree per §4.5's insert algorithm: descend by
// primary key comparing against each node's bucket bounds; when a
// bucket within range is found, insert-with-spill-lower into it,
// pushing any evicted entry into the predecessor (greatest-lower-bound)
// subtree, creating a new leaf only if that subtree has no room.
func (t *Tree) Insert(tuple lv.Tuple) {
	t.count++
	if t.root == nilNode {
		t.root = t.newLeaf(tuple, nilNode)
		return
	}
	if t.payload(t.root).Len() == 0 {
		// Transient empty root (I5's stated exception) left behind by a
		// prior drain to empty; reuse it rather than allocate.
		t.payload(t.root).TryInsert(tuple)
		return
	}

	key := tuple.PrimaryKey()
	cur := t.root
	for {
		switch t.payload(cur).CompareToKey(key) {
		case lv.MatchLess:
			if t.node(cur).right == nilNode {
				leaf := t.newLeaf(tuple, cur)
				t.node(cur).right = leaf
				t.rebalanceAfterInsert(leaf)
				return
			}
			cur = t.node(cur).right
		case lv.MatchGreater:
			if t.node(cur).left == nilNode {
				leaf := t.newLeaf(tuple, cur)
				t.node(cur).left = leaf
				t.rebalanceAfterInsert(leaf)
				return
			}
			cur = t.node(cur).left
		default: // MatchEqual or MatchIncomparable: bucket is the home for this key
			_, spilled, didSpill := t.payload(cur).InsertAndSpillLower(tuple)
			if didSpill {
				t.insertSpill(cur, spilled)
			}
			return
		}
	}
}

// insertSpill places an entry evicted from cur's bucket into cur's
// greatest-lower-bound subtree, per §4.5: descend into cur's left
// child, repeatedly taking the right child, to find the predecessor
// bucket; try_insert there, or attach a new leaf if it's full or
// doesn't exist.
func (t *Tree) insertSpill(cur NodeID, entry lv.Tuple) {
	if t.node(cur).left == nilNode {
		leaf := t.newLeaf(entry, cur)
		t.node(cur).left = leaf
		t.rebalanceAfterInsert(leaf)
		return
	}
	glb := t.node(cur).left
	for t.node(glb).right != nilNode {
		glb = t.node(glb).right
	}
	if t.payload(glb).TryInsert(entry) == InsertSuccess {
		return
	}
	leaf := t.newLeaf(entry, glb)
	t.node(glb).right = leaf
	t.rebalanceAfterInsert(leaf)
}

// rebalanceAfterInsert walks from a freshly attached leaf toward the
// root, updating balance factors and rotating at the first node that
// goes out of range. A single rotation always restores the subtree's
// pre-insertion height, so propagation stops there.
func (t *Tree) rebalanceAfterInsert(leaf NodeID) {
	child := leaf
	parent := t.node(child).parent
	for parent != nilNode {
		p := t.node(parent)
		if p.left == child {
			p.balance--
		} else {
			p.balance++
		}
		switch p.balance {
		case 0:
			return
		case 1, -1:
			child = parent
			parent = t.node(child).parent
		default:
			t.rebalance(parent)
			return
		}
	}
}

// rebalance restores balance at z (whose balance factor is ±2),
// returning the node that now occupies z's former position.
func (t *Tree) rebalance(z NodeID) NodeID {
	if t.node(z).balance == 2 {
		y := t.node(z).right
		if t.node(y).balance < 0 {
			wb := t.node(t.node(y).left).balance
			t.rotateRight(y)
			w := t.rotateLeft(z)
			t.node(z).balance, t.node(y).balance, t.node(w).balance = min(0, -wb), max(0, -wb), 0
			return w
		}
		return t.rotateLeft(z)
	}
	y := t.node(z).left
	if t.node(y).balance > 0 {
		wb := t.node(t.node(y).right).balance
		t.rotateLeft(y)
		w := t.rotateRight(z)
		t.node(y).balance, t.node(z).balance, t.node(w).balance = min(0, -wb), max(0, -wb), 0
		return w
	}
	return t.rotateRight(z)
}

func (t *Tree) replaceInParent(oldID, newID NodeID) {
	parent := t.node(oldID).parent
	t.node(newID).parent = parent
	if parent == nilNode {
		t.root = newID
		return
	}
	if t.node(parent).left == oldID {
		t.node(parent).left = newID
	} else {
		t.node(parent).right = newID
	}
}

// rotateLeft performs a single left rotation around x (x.balance==2),
// y = x.right becoming the new subtree root. Balance updates follow
// the standard AVL single-rotation formulas; for a double rotation,
// rebalance overwrites them afterwards from the inner node's prior
// balance factor.
func (t *Tree) rotateLeft(x NodeID) NodeID {
	y := t.node(x).right
	yLeft := t.node(y).left

	t.node(x).right = yLeft
	if yLeft != nilNode {
		t.node(yLeft).parent = x
	}
	t.replaceInParent(x, y)
	t.node(y).left = x
	t.node(x).parent = y

	if t.node(y).balance == 0 {
		t.node(x).balance = 1
		t.node(y).balance = -1
	} else {
		t.node(x).balance = 0
		t.node(y).balance = 0
	}
	return y
}

// rotateRight is rotateLeft's mirror, around z (z.balance==-2).
func (t *Tree) rotateRight(z NodeID) NodeID {
	y := t.node(z).left
	yRight := t.node(y).right

	t.node(z).left = yRight
	if yRight != nilNode {
		t.node(yRight).parent = z
	}
	t.replaceInParent(z, y)
	t.node(y).right = z
	t.node(z).parent = y

	if t.node(y).balance == 0 {
		t.node(z).balance = -1
		t.node(y).balance = 1
	} else {
		t.node(z).balance = 0
		t.node(y).balance = 0
	}
	return y
}

// Search implements §4.5's search: descend comparing the template's
// primary key against each node's bucket bounds (Incomparable, from a
// typed wildcard overlapping a bucket's kind range, is treated like
// Equal — descend into the bucket and let the Payload filter by the
// full template), returning the first tuple the template matches.
func (t *Tree) Search(tpl lv.Template) (lv.Tuple, bool) {
	return t.searchSubtree(t.root, tpl)
}

func (t *Tree) searchSubtree(root NodeID, tpl lv.Template) (lv.Tuple, bool) {
	cur := root
	key := tpl.PrimaryKey()
	for cur != nilNode {
		pl := t.payload(cur)
		if pl.Len() == 0 {
			return lv.Tuple{}, false
		}
		switch pl.CompareToKey(key) {
		case lv.MatchLess:
			cur = t.node(cur).right
		case lv.MatchGreater:
			cur = t.node(cur).left
		default:
			if found, ok := pl.TryGet(tpl); ok {
				return found, true
			}
			if found, ok := t.searchSubtree(t.node(cur).left, tpl); ok {
				return found, true
			}
			cur = t.node(cur).right
		}
	}
	return lv.Tuple{}, false
}

// Remove implements §4.5's remove: locate the bucket and entry Search
// would find, delete it, and if the bucket is left empty, collapse the
// tree structure per the leaf/half-leaf/internal cases.
func (t *Tree) Remove(tpl lv.Template) (lv.Tuple, bool) {
	return t.removeFromSubtree(t.root, tpl)
}

func (t *Tree) removeFromSubtree(root NodeID, tpl lv.Template) (lv.Tuple, bool) {
	cur := root
	key := tpl.PrimaryKey()
	for cur != nilNode {
		pl := t.payload(cur)
		if pl.Len() == 0 {
			return lv.Tuple{}, false
		}
		switch pl.CompareToKey(key) {
		case lv.MatchLess:
			cur = t.node(cur).right
		case lv.MatchGreater:
			cur = t.node(cur).left
		default:
			if removed, ok := pl.Remove(tpl); ok {
				t.count--
				if pl.Len() == 0 {
					t.removeEmptied(cur)
				}
				return removed, true
			}
			if removed, ok := t.removeFromSubtree(t.node(cur).left, tpl); ok {
				return removed, true
			}
			cur = t.node(cur).right
		}
	}
	return lv.Tuple{}, false
}

// removeEmptied restructures the tree after id's Payload has become
// empty, per §4.5's three cases. The AVL invariant guarantees that a
// node with exactly one child has a childless (leaf) child, so the
// half-leaf case never orphans grandchildren.
func (t *Tree) removeEmptied(id NodeID) {
	n := t.node(id)
	switch {
	case n.left == nilNode && n.right == nilNode:
		if n.parent == nilNode {
			// Root stays as the stable empty-root sentinel (I5).
			return
		}
		parent := n.parent
		leftChild := t.node(parent).left == id
		if leftChild {
			t.node(parent).left = nilNode
		} else {
			t.node(parent).right = nilNode
		}
		t.arena.free(id)
		t.rebalanceAfterDelete(parent, leftChild)

	case n.left == nilNode || n.right == nilNode:
		child := n.left
		if child == nilNode {
			child = n.right
		}
		t.payload(id).Merge(t.payload(child))
		if t.node(id).left == child {
			t.node(id).left = nilNode
		} else {
			t.node(id).right = nilNode
		}
		t.arena.free(child)
		t.node(id).balance = 0
		if n.parent == nilNode {
			return
		}
		leftChild := t.node(n.parent).left == id
		t.rebalanceAfterDelete(n.parent, leftChild)

	default:
		glb := n.left
		for t.node(glb).right != nilNode {
			glb = t.node(glb).right
		}
		t.payload(id).MergeUntilFull(t.payload(glb))
		t.removeEmptied(glb)
	}
}

// rebalanceAfterDelete walks upward from parent, whose child on the
// given side just shrank by one level, updating balance factors and
// rotating as needed. Unlike insertion, a rotation here can still
// shrink the subtree further, so propagation continues past it when
// the rotated subtree's new root has balance 0.
func (t *Tree) rebalanceAfterDelete(parent NodeID, shrankLeft bool) {
	for parent != nilNode {
		p := t.node(parent)
		if shrankLeft {
			p.balance++
		} else {
			p.balance--
		}
		switch p.balance {
		case 1, -1:
			return
		case 0:
			gp := p.parent
			if gp == nilNode {
				return
			}
			shrankLeft = t.node(gp).left == parent
			parent = gp
		default:
			newRoot := t.rebalance(parent)
			if t.node(newRoot).balance != 0 {
				return
			}
			gp := t.node(newRoot).parent
			if gp == nilNode {
				return
			}
			shrankLeft = t.node(gp).left == newRoot
			parent = gp
		}
	}
}

// Walk visits every stored tuple in ascending primary-key order,
// stopping early if visit returns false. Used by the store's snapshot
// operation (§4.6) and by tests checking in-order invariants (P2).
func (t *Tree) Walk(visit func(lv.Tuple) bool) {
	t.walk(t.root, visit)
}

func (t *Tree) walk(id NodeID, visit func(lv.Tuple) bool) bool {
	if id == nilNode {
		return true
	}
	if !t.walk(t.node(id).left, visit) {
		return false
	}
	for _, entry := range t.payload(id).Entries() {
		if !visit(entry) {
			return false
		}
	}
	return t.walk(t.node(id).right, visit)
}
