// Copyright (c) 2014-2015 Utkan Güngördü <utkan@freeconsole.org>
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

	"github.com/spaolacci/murmur3"
)

// hashSeed is the seed passed to every murmur3 call made by this package.
// It is fixed, not configurable, because it is baked into the wire format:
// changing it would silently change which bucket any previously-serialized
// fingerprint belongs in.
const hashSeed uint32 = 0

// hash128 funnels value through f and returns the low 64 bits of its
// MurmurHash3 128-bit digest. Strategy splits this into two 32-bit halves
// to derive a fingerprint and a primary bucket index.
func hash128[T any](f Funnel[T], value T) uint64 {
	sink := newHashSink()
	f.Into(value, sink)
	lo, _ := murmur3.Sum128WithSeed(sink.bytes(), hashSeed)
	return lo
}

// hash32 is the 32-bit MurmurHash3 of i's big-endian bytes, used by altIndex
// to derive an odd offset from a fingerprint. It is deliberately independent
// of any Funnel: altIndex only ever hashes an already-derived fingerprint,
// never the original element.
func hash32(i int32) int32 {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(i))
	return int32(murmur3.Sum32WithSeed(buf[:], hashSeed))
}
