package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(numBuckets uint64, numEntriesPerBucket, numBitsPerEntry uint32) *Filter[string] {
	return NewWithShape[string](StringFunnel{}, numBuckets, numEntriesPerBucket, numBitsPerEntry,
		WithStrategy[string](NewMurmurBealduprasStrategy(DefaultEvictionSeed)))
}

func TestEmptyLookup(t *testing.T) {
	f := newTestFilter(1024, 4, 8)
	assert.False(t, f.MightContain("alpha"))
	assert.EqualValues(t, 0, f.Size())
}

func TestInsertThenQuery(t *testing.T) {
	f := newTestFilter(1024, 4, 8)

	for _, x := range []string{"a", "b", "c"} {
		require.True(t, f.Put(x))
	}
	for _, x := range []string{"a", "b", "c"} {
		assert.True(t, f.MightContain(x))
	}
	assert.EqualValues(t, 3, f.Size())
}

func TestDeleteAbsentKey(t *testing.T) {
	f := newTestFilter(1024, 4, 8)
	assert.False(t, f.Delete("ghost"))
	assert.EqualValues(t, 0, f.Size())
}

func TestInsertDeleteSymmetry(t *testing.T) {
	f := newTestFilter(1024, 4, 8)
	require.True(t, f.Put("x"))
	require.True(t, f.Delete("x"))
	assert.False(t, f.MightContain("x"))
}

func TestCapacityStressRollsBackAndKeepsEarlierInserts(t *testing.T) {
	f := newTestFilter(2, 4, 8)

	inserted := make([]string, 0, 9)
	failed := false
	for i := 0; i < 9; i++ {
		x := string(rune('a' + i))
		if f.Put(x) {
			inserted = append(inserted, x)
		} else {
			failed = true
		}
	}

	assert.True(t, failed, "expected at least one Put to fail at capacity 8")
	assert.LessOrEqual(t, f.Size(), uint64(8))

	for _, x := range inserted {
		assert.Truef(t, f.MightContain(x), "previously inserted %q should still be queryable", x)
	}
}

func TestPutAllMonotonicity(t *testing.T) {
	src := newTestFilter(1024, 4, 8)
	dest := newTestFilter(1024, 4, 8)

	values := []string{"one", "two", "three", "four", "five"}
	for _, v := range values {
		require.True(t, src.Put(v))
	}

	require.True(t, dest.PutAll(src))

	for _, v := range values {
		assert.Truef(t, dest.MightContain(v), "%q should be present after putAll", v)
	}
}

func TestPutAllRequiresCompatibleShape(t *testing.T) {
	src := newTestFilter(1024, 4, 8)
	dest := newTestFilter(512, 4, 8)

	src.Put("x")
	assert.False(t, dest.PutAll(src))
}

func TestEquivalentTrueForSameInserts(t *testing.T) {
	a := newTestFilter(1024, 4, 8)
	b := newTestFilter(1024, 4, 8)

	for _, v := range []string{"p", "q", "r"} {
		require.True(t, a.Put(v))
		require.True(t, b.Put(v))
	}

	assert.True(t, a.Equivalent(b))
}

func TestEquivalentFalseForIncompatibleShapes(t *testing.T) {
	a := newTestFilter(1024, 4, 8)
	b := newTestFilter(512, 4, 8)
	assert.False(t, a.Equivalent(b))
}

func TestSizeChecksumConsistencyAfterMixedOps(t *testing.T) {
	f := newTestFilter(256, 4, 8)

	inserted := map[string]bool{}
	for i := 0; i < 200; i++ {
		x := string(rune('A'+i%26)) + string(rune('a'+(i*7)%26))
		if i%3 == 0 && inserted[x] {
			if f.Delete(x) {
				inserted[x] = false
			}
			continue
		}
		if f.Put(x) {
			inserted[x] = true
		}
	}

	var size uint64
	var checksum int64
	table := f.table
	for b := uint64(0); b < table.numBuckets; b++ {
		for e := uint32(0); e < table.numEntriesPerBucket; e++ {
			v := table.readEntry(b, e)
			if v != empty {
				size++
				checksum += int64(v)
			}
		}
	}

	assert.Equal(t, size, f.Size())
	assert.Equal(t, checksum, table.Checksum())
}

func TestNoFalseNegativesAfterManyInserts(t *testing.T) {
	f := newTestFilter(2048, 4, 8)

	var present []string
	for i := 0; i < 1000; i++ {
		x := randomString(i)
		if f.Put(x) {
			present = append(present, x)
		}
	}

	for _, x := range present {
		assert.Truef(t, f.MightContain(x), "%q inserted but not found", x)
	}
}

func TestFailedPutRollsBackToPreInsertState(t *testing.T) {
	table := NewBucketTable(2, 4, 8)
	strategy := newMurmurBealduprasStrategy(DefaultEvictionSeed)

	// Fill the table to its 8-slot capacity with distinct fingerprints so
	// the next Put has no empty slot available anywhere and must exhaust
	// MaxRelocationAttempts.
	fps := []uint32{1, 2, 3, 4, 5, 6, 7, 8}
	for i, fp := range fps {
		bucket := uint64(i % 2)
		entry := uint32(i / 2)
		table.swapEntry(fp, bucket, entry)
	}

	beforeChecksum := table.Checksum()
	beforeSize := table.Size()
	before := make([]uint64, len(table.data))
	copy(before, table.data)

	ok := strategy.Put(0xdeadbeefcafef00d, table)

	assert.False(t, ok)
	assert.Equal(t, beforeChecksum, table.Checksum())
	assert.Equal(t, beforeSize, table.Size())
	assert.Equal(t, before, table.data)
}

func randomString(seed int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 12)
	x := uint32(seed*2654435761 + 1)
	for i := range b {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		b[i] = letters[x%uint32(len(letters))]
	}
	return string(b)
}
