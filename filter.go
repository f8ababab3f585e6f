// Copyright (c) 2014 Utkan Güngördü <utkan@freeconsole.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cuckoo

import (
	"log"

	"github.com/bdupras/cuckoofilter/sizing"
)

// Filter is the typed, approximate set-membership facade over a BucketTable
// and a Strategy. Like the teacher's Cuckoo, it is not thread-safe: callers
// sharing a Filter across goroutines must provide their own mutual
// exclusion (spec 5).
type Filter[T any] struct {
	funnel   Funnel[T]
	strategy Strategy
	table    *BucketTable
	logger   *log.Logger
}

// Option configures a Filter at construction time.
type Option[T any] func(*Filter[T])

// WithStrategy overrides the default (ordinal 0) strategy.
func WithStrategy[T any](s Strategy) Option[T] {
	return func(f *Filter[T]) { f.strategy = s }
}

// WithLogger installs a logger used to report internal invariant
// violations. The default discards these messages; they still panic
// either way (spec 7.4).
func WithLogger[T any](l *log.Logger) Option[T] {
	return func(f *Filter[T]) { f.logger = l }
}

func (f *Filter[T]) applyLogger() {
	if s, ok := f.strategy.(*murmurBealduprasStrategy); ok {
		s.SetLogger(f.logger)
	}
}

// New creates a Filter sized for capacity elements at roughly fpp false
// positive probability, per sizing.Plan. funnel describes how to turn a T
// into hashable bytes.
func New[T any](funnel Funnel[T], capacity uint64, fpp float64, opts ...Option[T]) *Filter[T] {
	shape := sizing.Plan(capacity, fpp)
	return NewWithShape(funnel, shape.NumBuckets, shape.NumEntriesPerBucket, shape.NumBitsPerEntry, opts...)
}

// NewWithShape creates a Filter with an explicit BucketTable shape, bypassing
// sizing.Plan's capacity/fpp heuristic.
func NewWithShape[T any](funnel Funnel[T], numBuckets uint64, numEntriesPerBucket, numBitsPerEntry uint32, opts ...Option[T]) *Filter[T] {
	f := &Filter[T]{
		funnel:   funnel,
		strategy: strategies[MurmurBealduprasStrategy],
		table:    NewBucketTable(numBuckets, numEntriesPerBucket, numBitsPerEntry),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.applyLogger()
	return f
}

func (f *Filter[T]) hash(x T) uint64 {
	return hash128(f.funnel, x)
}

// Put inserts x, returning true if it was placed and false if the table is
// structurally full (in which case the table is unchanged: the failed
// attempt is rolled back). Put does not deduplicate; inserting the same
// element twice stores two fingerprint copies, both of which must be
// deleted to remove membership (spec 9, "multiplicity semantics").
func (f *Filter[T]) Put(x T) bool {
	return f.strategy.Put(f.hash(x), f.table)
}

// Delete removes one fingerprint copy matching x, returning true if one was
// found. Deleting an element never inserted is safe but may delete a
// different element's fingerprint if it shares both the fingerprint and one
// of the two candidate buckets -- an intrinsic property of fingerprint-only
// filters called a false delete (spec 4.3).
func (f *Filter[T]) Delete(x T) bool {
	return f.strategy.Delete(f.hash(x), f.table)
}

// MightContain reports whether x may have been inserted. False positives
// are possible; false negatives are not, unless an eviction has silently
// failed or a false delete has occurred.
func (f *Filter[T]) MightContain(x T) bool {
	return f.strategy.MightContain(f.hash(x), f.table)
}

// PutAll merges other's fingerprints into f, returning false and stopping
// at the first unrecoverable failure. Both filters must share a shape.
func (f *Filter[T]) PutAll(other *Filter[T]) bool {
	return f.strategy.PutAll(f.table, other.table)
}

// Equivalent reports whether f and other store the same fingerprint
// multiset, treating a fingerprint's two candidate buckets as
// interchangeable.
func (f *Filter[T]) Equivalent(other *Filter[T]) bool {
	return f.strategy.Equivalent(f.table, other.table)
}

// Size returns the number of fingerprints currently stored.
func (f *Filter[T]) Size() uint64 { return f.table.Size() }

// Capacity returns the total number of entry slots.
func (f *Filter[T]) Capacity() uint64 { return f.table.Capacity() }

// Load returns Size()/Capacity().
func (f *Filter[T]) Load() float64 { return f.table.Load() }

// ExpectedFpp estimates the current false-positive probability.
func (f *Filter[T]) ExpectedFpp() float64 { return f.table.ExpectedFpp() }

// BitSize returns the size in bits of the underlying packed data array.
func (f *Filter[T]) BitSize() uint64 { return f.table.BitSize() }
