/*
Package pool provides a bounded pool for transient helper objects.

The pool keeps exactly one shared instance. Checking it out is guarded by an
atomic flag; a caller finding the shared instance busy gets a fresh,
disposable instance instead. Checkout never blocks and never fails.
*/
package pool

import "sync/atomic"

// One is a pool of at most one reusable *T.
type One[T any] struct {
	busy   atomic.Bool
	shared *T
	fresh  func() *T
	misses atomic.Int64
}

// New creates a pool. fresh is called once for the shared instance and again
// for every disposable instance.
func New[T any](fresh func() *T) *One[T] {
	return &One[T]{
		shared: fresh(),
		fresh:  fresh,
	}
}

// Get checks out the shared instance if it is available and returns a new
// disposable instance otherwise.
func (p *One[T]) Get() *T {
	if p.busy.CompareAndSwap(false, true) {
		return p.shared
	}
	p.misses.Add(1)
	return p.fresh()
}

// Put returns x to the pool. Disposable instances are dropped.
func (p *One[T]) Put(x *T) {
	if x == p.shared {
		p.busy.Store(false)
	}
}

// Misses is the number of disposable instances handed out so far.
func (p *One[T]) Misses() int64 {
	return p.misses.Load()
}
