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

import "errors"

// ErrInvariantViolation indicates a rollback failed to restore the table to
// its pre-insert state, or size went negative. Either means a bug in the
// engine, not a caller mistake. Shape violations and sizing overflow are
// reported as panics at construction time instead (there is no sane zero
// value to hand back from a constructor given nonsense parameters).
var ErrInvariantViolation = errors.New("cuckoo: internal invariant violation")
