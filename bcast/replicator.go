package bcast

import (
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lindadb/ldb/log"
	"github.com/lindadb/ldb/wire"
)

// Peer is a replication target: a long-lived connection this
// Replicator writes envelopes to. Dial is expected to reconnect on
// failure; Replicator calls it lazily and caches the result.
type Peer struct {
	Addr string
	Dial func(addr string) (net.Conn, error)

	mu   sync.Mutex
	conn net.Conn
}

func (p *Peer) connection() (net.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		return p.conn, nil
	}
	dial := p.Dial
	if dial == nil {
		dial = func(addr string) (net.Conn, error) { return net.DialTimeout("tcp", addr, 5*time.Second) }
	}
	conn, err := dial(p.Addr)
	if err != nil {
		return nil, err
	}
	p.conn = conn
	return conn, nil
}

func (p *Peer) invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn = nil
}

// Replicator is the reference multi-peer Sink/Awaiter: it ships every
// Event to all configured peers concurrently (best-effort — a peer
// write failure is logged and invalidates that peer's connection for
// the next attempt, but doesn't fail the local mutation) and, since it
// has no way to learn of a remote insert out of band in this reference
// implementation, treats Await as an immediate no-op like NoopSink.
type Replicator struct {
	peers []*Peer
}

// NewReplicator constructs a Replicator over the given peers.
func NewReplicator(peers ...*Peer) *Replicator {
	return &Replicator{peers: peers}
}

// Publish implements Sink by encoding ev into a versioned envelope and
// writing it, length-prefixed and snappy-compressed, to every peer in
// parallel.
func (r *Replicator) Publish(ctx context.Context, ev Event) error {
	envelope, err := encodeEnvelope(ev)
	if err != nil {
		return errors.Wrap(err, "bcast: encode envelope")
	}
	compressed := snappy.Encode(nil, envelope)

	var frame bytes.Buffer
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(compressed)))
	frame.Write(lenBuf[:])
	frame.Write(compressed)

	g, _ := errgroup.WithContext(ctx)
	for _, peer := range r.peers {
		peer := peer
		g.Go(func() error {
			conn, err := peer.connection()
			if err != nil {
				log.Warn("bcast: peer unreachable", "addr", peer.Addr, "err", err)
				return nil
			}
			if _, err := conn.Write(frame.Bytes()); err != nil {
				log.Warn("bcast: peer write failed", "addr", peer.Addr, "err", err)
				peer.invalidate()
			}
			return nil
		})
	}
	return g.Wait()
}

// Await is a no-op: this reference replicator doesn't implement a
// remote-satisfies-local-wait protocol, only best-effort shipping.
func (r *Replicator) Await(context.Context) error { return nil }

// Envelope is a decoded replication message: the event plus the
// random ID it was tagged with, for a receiver's future dedup needs.
type Envelope struct {
	ID    uuid.UUID
	Event Event
}

// DecodeEnvelope parses what encodeEnvelope produced (after the caller
// has already snappy-decompressed it). A receiving peer process is out
// of scope for this reference implementation, but the wire shape is
// symmetric so one could be added without touching Publish.
func DecodeEnvelope(data []byte) (Envelope, error) {
	if len(data) < 16+1+8 {
		return Envelope{}, errors.New("bcast: envelope too short")
	}
	id := uuid.UUID(data[:16])
	insert := data[16] == 1
	spaceLen := binary.LittleEndian.Uint64(data[17:25])
	rest := data[25:]
	if uint64(len(rest)) < spaceLen {
		return Envelope{}, errors.New("bcast: envelope truncated space name")
	}
	space := string(rest[:spaceLen])
	tup, err := wire.Decode(rest[spaceLen:])
	if err != nil {
		return Envelope{}, errors.Wrap(err, "bcast: decode tuple")
	}
	return Envelope{ID: id, Event: Event{Space: space, Insert: insert, Tuple: tup}}, nil
}

func encodeEnvelope(ev Event) ([]byte, error) {
	var buf bytes.Buffer
	id := uuid.NewRandom()
	buf.Write(id)
	if ev.Insert {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	var spaceLen [8]byte
	binary.LittleEndian.PutUint64(spaceLen[:], uint64(len(ev.Space)))
	buf.Write(spaceLen[:])
	buf.WriteString(ev.Space)
	buf.Write(wire.Encode(ev.Tuple))
	return buf.Bytes(), nil
}
