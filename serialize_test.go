package cuckoo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToReadFromRoundTrip(t *testing.T) {
	src := NewWithShape[string](StringFunnel{}, 1024, 4, 8)
	for _, v := range []string{"a", "b", "c", "d"} {
		require.True(t, src.Put(v))
	}

	var buf bytes.Buffer
	n, err := src.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	dest := NewWithShape[string](StringFunnel{}, 2, 4, 8) // deliberately wrong shape beforehand
	read, err := dest.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, n, read)

	assert.True(t, src.Equivalent(dest))
	for _, v := range []string{"a", "b", "c", "d"} {
		assert.True(t, dest.MightContain(v))
	}
	assert.Equal(t, src.Size(), dest.Size())
}

func TestReadFromUnknownOrdinalErrors(t *testing.T) {
	src := NewWithShape[string](StringFunnel{}, 2, 4, 8)
	var buf bytes.Buffer
	_, err := src.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[0] = 0xFF // corrupt the strategy ordinal in place

	dest := NewWithShape[string](StringFunnel{}, 2, 4, 8)
	_, err = dest.ReadFrom(bytes.NewReader(raw))
	assert.Error(t, err)
}
