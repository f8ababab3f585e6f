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

import "encoding/binary"

// Funnel describes how to decompose a value of type T into bytes for
// hashing. It is the object->byte-sink bridge the core consumes (spec's
// "object->64-bit hash bridge") but never implements itself beyond the
// built-ins below; callers with their own key types provide their own
// Funnel.
type Funnel[T any] interface {
	Into(value T, sink *HashSink)
}

// HashSink accumulates the bytes a Funnel writes before they're handed to
// the underlying hash function. It is a thin, append-only byte buffer --
// Guava calls the equivalent type PrimitiveSink.
type HashSink struct {
	buf []byte
}

func newHashSink() *HashSink {
	return &HashSink{}
}

func (s *HashSink) bytes() []byte { return s.buf }

// PutBytes appends b verbatim.
func (s *HashSink) PutBytes(b []byte) {
	s.buf = append(s.buf, b...)
}

// PutString appends str's UTF-8 bytes.
func (s *HashSink) PutString(str string) {
	s.buf = append(s.buf, str...)
}

// PutUint64 appends v as 8 little-endian bytes.
func (s *HashSink) PutUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// PutInt64 appends v as 8 little-endian bytes.
func (s *HashSink) PutInt64(v int64) {
	s.PutUint64(uint64(v))
}

// StringFunnel funnels a string by its raw bytes.
type StringFunnel struct{}

func (StringFunnel) Into(value string, sink *HashSink) { sink.PutString(value) }

// BytesFunnel funnels a []byte verbatim.
type BytesFunnel struct{}

func (BytesFunnel) Into(value []byte, sink *HashSink) { sink.PutBytes(value) }

// Int64Funnel funnels an int64 as 8 little-endian bytes.
type Int64Funnel struct{}

func (Int64Funnel) Into(value int64, sink *HashSink) { sink.PutInt64(value) }
