package pool

import (
	"github.com/wippyai/cgfx/errors"
)

// Kind selects how values are normalized before pooling.
type Kind int

const (
	// Text pools NUL-terminate every value.
	Text Kind = iota
	// Binary pools pad every value to the blob alignment.
	Binary
)

func (k Kind) String() string {
	if k == Binary {
		return "blob"
	}
	return "string"
}

// Tail selects the trailing padding rule applied by Finalize.
type Tail int

const (
	TailHalfBlock Tail = iota
	TailWord
)

// DefaultBlobAlign is the blob alignment used unless WithBlobAlign is given.
const DefaultBlobAlign = 16

// Option configures a Pool.
type Option func(*Pool)

// WithBlobAlign sets the boundary blobs are padded to. Values below 1 are
// treated as 1.
func WithBlobAlign(n int) Option {
	return func(p *Pool) {
		p.align = max(n, 1)
	}
}

// WithTail sets the trailing padding rule.
func WithTail(t Tail) Option {
	return func(p *Pool) {
		p.tail = t
	}
}

// Pool is an insertion-ordered set of unique byte values.
type Pool struct {
	index     map[string]int
	values    [][]byte
	kind      Kind
	align     int
	tail      Tail
	content   int
	padding   int
	base      int
	finalized bool
}

// New creates an empty pool.
func New(kind Kind, opts ...Option) *Pool {
	p := &Pool{
		kind:  kind,
		align: DefaultBlobAlign,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Kind returns the pool kind.
func (p *Pool) Kind() Kind {
	return p.kind
}

// Add registers a value. Empty values are never pooled; they encode as a
// null pointer. Adding to a finalized pool invalidates its offsets until the
// next Finalize.
func (p *Pool) Add(value []byte) {
	if len(value) == 0 {
		return
	}
	v := p.normalize(value)
	if _, ok := p.index[string(v)]; ok {
		return
	}
	p.index[string(v)] = p.content
	p.values = append(p.values, v)
	p.content += len(v)
	p.padding = 0
	p.finalized = false
}

// AddString registers a string value.
func (p *Pool) AddString(s string) {
	p.Add([]byte(s))
}

// Finalize places the pool at base and computes the trailing padding. It
// returns the first offset after the pool.
func (p *Pool) Finalize(base int) int {
	p.base = base
	switch p.tail {
	case TailWord:
		p.padding = 4 - p.content%4
	default:
		p.padding = (16-(base+p.content)%16)%16 ^ 8
	}
	p.finalized = true
	return base + p.Size()
}

// Offset returns the absolute offset of a previously added value.
func (p *Pool) Offset(value []byte) (int, error) {
	if !p.finalized {
		return 0, errors.NotInitialized(errors.PhasePool, p.kind.String()+" pool")
	}
	rel, ok := p.index[string(p.normalize(value))]
	if !ok || len(value) == 0 {
		return 0, errors.NotFound(errors.PhasePool, p.kind.String(), preview(value))
	}
	return p.base + rel, nil
}

// OffsetString returns the absolute offset of a previously added string.
func (p *Pool) OffsetString(s string) (int, error) {
	return p.Offset([]byte(s))
}

// Bytes returns the pooled values in first-seen order followed by the
// trailing padding.
func (p *Pool) Bytes() []byte {
	out := make([]byte, 0, p.Size())
	for _, v := range p.values {
		out = append(out, v...)
	}
	return append(out, make([]byte, p.padding)...)
}

// Size returns the pool size in bytes, including trailing padding once
// finalized.
func (p *Pool) Size() int {
	return p.content + p.padding
}

// Len returns the number of unique values.
func (p *Pool) Len() int {
	return len(p.values)
}

// Empty reports whether no value has been added.
func (p *Pool) Empty() bool {
	return len(p.values) == 0
}

// Base returns the offset passed to the last Finalize.
func (p *Pool) Base() int {
	return p.base
}

func (p *Pool) normalize(value []byte) []byte {
	if p.kind == Text {
		out := make([]byte, len(value)+1)
		copy(out, value)
		return out
	}
	pad := (p.align - len(value)%p.align) % p.align
	out := make([]byte, len(value)+pad)
	copy(out, value)
	return out
}

func preview(value []byte) string {
	const limit = 32
	if len(value) > limit {
		return string(value[:limit]) + "..."
	}
	return string(value)
}
