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
	"encoding/binary"
	"fmt"
	"io"
)

// WriteTo writes f's wire form: strategy ordinal (u8), numBuckets (u64),
// numEntriesPerBucket (u32), numBitsPerEntry (u32), size (u64), checksum
// (i64), then data.len*8 bytes of the packed data array, all big-endian.
// This framing is load-bearing for interop (spec 6) -- field order and
// widths must never change.
func (f *Filter[T]) WriteTo(w io.Writer) (int64, error) {
	t := f.table
	header := []any{
		f.strategy.Ordinal(),
		t.numBuckets,
		t.numEntriesPerBucket,
		t.numBitsPerEntry,
		t.size,
		t.checksum,
	}

	var written int64
	for _, field := range header {
		if err := binary.Write(w, binary.BigEndian, field); err != nil {
			return written, err
		}
		written += int64(binary.Size(field))
	}

	for _, word := range t.data {
		if err := binary.Write(w, binary.BigEndian, word); err != nil {
			return written, err
		}
		written += 8
	}

	return written, nil
}

// ReadFrom replaces f's table and strategy with the wire form read from r.
// f's funnel is left untouched -- the wire form carries no type information,
// so the caller is responsible for reading into a Filter[T] built with a
// funnel matching the serialized data's original element type.
func (f *Filter[T]) ReadFrom(r io.Reader) (int64, error) {
	var ordinal uint8
	var numBuckets uint64
	var numEntriesPerBucket, numBitsPerEntry uint32
	var size uint64
	var checksum int64

	var read int64
	for _, field := range []any{&ordinal, &numBuckets, &numEntriesPerBucket, &numBitsPerEntry, &size, &checksum} {
		if err := binary.Read(r, binary.BigEndian, field); err != nil {
			return read, err
		}
		read += int64(binary.Size(field))
	}

	strategy, ok := StrategyByOrdinal(ordinal)
	if !ok {
		return read, fmt.Errorf("cuckoo: unknown strategy ordinal %d", ordinal)
	}

	table := NewBucketTable(numBuckets, numEntriesPerBucket, numBitsPerEntry)
	for i := range table.data {
		if err := binary.Read(r, binary.BigEndian, &table.data[i]); err != nil {
			return read, err
		}
		read += 8
	}
	table.size = size
	table.checksum = checksum

	f.strategy = strategy
	f.table = table
	f.applyLogger()

	return read, nil
}
