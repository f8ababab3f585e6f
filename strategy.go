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

import "log"

// MaxRelocationAttempts bounds the random-walk eviction loop run by Put when
// both of an element's candidate buckets are full.
const MaxRelocationAttempts = 500

// Strategy derives a fingerprint and a pair of candidate bucket indices from
// a 64-bit element hash, and implements the cuckoo insertion/eviction
// algorithm, lookup, deletion, union and equivalence over a BucketTable. It
// is a pure function collection plus an internally seeded eviction-victim
// source; it holds no state specific to any one table.
//
// Strategy implementations are selected from a stable, append-only ordinal
// (see registry.go) because the ordinal is part of a filter's serialized
// form.
type Strategy interface {
	// Ordinal is this strategy's stable position in the registry.
	Ordinal() uint8
	// Name is this strategy's wire identifier.
	Name() string

	Put(hash uint64, table *BucketTable) bool
	Delete(hash uint64, table *BucketTable) bool
	MightContain(hash uint64, table *BucketTable) bool
	PutAll(dest, src *BucketTable) bool
	Equivalent(a, b *BucketTable) bool
}

// murmurBealduprasStrategy is strategy ordinal 0, MURMUR128_BEALDUPRAS_32:
// fingerprint and primary index come from the two halves of a 64-bit murmur3
// hash of the element, and the alternate index is the partial-key-reversible
// parity-flip transform from a 32-bit murmur3 hash of the fingerprint.
type murmurBealduprasStrategy struct {
	rng    *evictionSource
	logger *log.Logger
}

func newMurmurBealduprasStrategy(seed uint32) *murmurBealduprasStrategy {
	return &murmurBealduprasStrategy{rng: newEvictionSource(seed)}
}

func (s *murmurBealduprasStrategy) Ordinal() uint8 { return 0 }
func (s *murmurBealduprasStrategy) Name() string    { return "MURMUR128_BEALDUPRAS_32" }

// SetLogger installs the logger used to report a rollback that fails to
// restore the pre-insert table state. A nil logger (the default) discards
// the message; the failure still panics either way (spec 7.4: production
// builds may degrade to logging, but must not silently continue).
func (s *murmurBealduprasStrategy) SetLogger(l *log.Logger) { s.logger = l }

// components splits hash into its two halves and derives the fingerprint and
// both candidate bucket indices for table's shape.
func (s *murmurBealduprasStrategy) components(hash uint64, table *BucketTable) (fp uint32, i1, i2 uint64) {
	hash1 := uint32(hash)
	hash2 := uint32(hash >> 32)

	fp = deriveFingerprint(hash2, uint(table.numBitsPerEntry))
	i1 = primaryIndex(hash1, table.numBuckets)
	i2 = altIndex(i1, fp, table.numBuckets)
	return
}

func (s *murmurBealduprasStrategy) Put(hash uint64, table *BucketTable) bool {
	fp, i1, i2 := s.components(hash, table)
	return s.putFingerprint(fp, i1, i2, table)
}

func (s *murmurBealduprasStrategy) putFingerprint(fp uint32, i1, i2 uint64, table *BucketTable) bool {
	if table.swapAnyEntry(fp, empty, i1) {
		return true
	}
	if table.swapAnyEntry(fp, empty, i2) {
		return true
	}
	return s.evict(fp, i2, table)
}

// kick records one step of the eviction path: the slot written, and the
// value it held before the write (which the rollback restores).
type kick struct {
	bucket uint64
	entry  uint32
	prior  uint32
}

// evict runs the bounded random-walk relocation loop starting from
// startIndex, the last bucket tried before overflow. On success the table
// holds fp and every displaced entry has found a new home. On failure every
// write performed during the attempt is undone in reverse order, leaving the
// table bit-identical to its state before evict was called.
func (s *murmurBealduprasStrategy) evict(fp uint32, startIndex uint64, table *BucketTable) bool {
	var path []kick

	cur := fp
	idx := startIndex

	for attempt := 0; attempt < MaxRelocationAttempts; attempt++ {
		e := s.rng.nextIntn(table.numEntriesPerBucket)
		prior := table.swapEntry(cur, idx, e)
		path = append(path, kick{bucket: idx, entry: e, prior: prior})

		// Defensive: an empty slot would normally already have been taken
		// in putFingerprint, but a random slot can land on one anyway.
		if prior == empty {
			return true
		}

		idx = altIndex(idx, prior, table.numBuckets)
		cur = prior
	}

	for i := len(path) - 1; i >= 0; i-- {
		k := path[i]
		restored := table.swapEntry(k.prior, k.bucket, k.entry)
		if i == 0 && restored != fp {
			if s.logger != nil {
				s.logger.Printf("cuckoo: rollback mismatch: expected fingerprint %d, restored over %d", fp, restored)
			}
			panic(ErrInvariantViolation)
		}
	}

	return false
}

func (s *murmurBealduprasStrategy) Delete(hash uint64, table *BucketTable) bool {
	fp, i1, i2 := s.components(hash, table)
	if table.swapAnyEntry(empty, fp, i1) {
		return true
	}
	return table.swapAnyEntry(empty, fp, i2)
}

func (s *murmurBealduprasStrategy) MightContain(hash uint64, table *BucketTable) bool {
	fp, i1, i2 := s.components(hash, table)
	return table.hasEntry(fp, i1) || table.hasEntry(fp, i2)
}

// PutAll merges every fingerprint of src into dest, returning false and
// stopping at the first unrecoverable failure. dest and src must share a
// shape, since alternate indices are only meaningful within one shape.
func (s *murmurBealduprasStrategy) PutAll(dest, src *BucketTable) bool {
	if !dest.IsCompatible(src) {
		return false
	}

	for i := uint64(0); i < src.numBuckets; i++ {
		for e := uint32(0); e < src.numEntriesPerBucket; e++ {
			fp := src.readEntry(i, e)
			if fp == empty {
				continue
			}

			alt := altIndex(i, fp, dest.numBuckets)
			if !s.putFingerprint(fp, i, alt, dest) {
				return false
			}
		}
	}

	return true
}

// Equivalent reports whether a and b store the same fingerprint multiset in
// every {i, altIndex(i,F)} pair, treating the two candidate buckets of any
// given fingerprint as interchangeable.
func (s *murmurBealduprasStrategy) Equivalent(a, b *BucketTable) bool {
	if !a.IsCompatible(b) {
		return false
	}

	for i := uint64(0); i < b.numBuckets; i++ {
		for e := uint32(0); e < b.numEntriesPerBucket; e++ {
			fp := b.readEntry(i, e)
			if fp == empty {
				continue
			}

			alt := altIndex(i, fp, b.numBuckets)
			bCount := b.countEntry(fp, i) + b.countEntry(fp, alt)
			aCount := a.countEntry(fp, i) + a.countEntry(fp, alt)
			if aCount != bCount {
				return false
			}
		}
	}

	return true
}
