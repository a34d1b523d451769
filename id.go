package forms

import (
	"fmt"
	"hash/fnv"
)

// ID identifies a widget within its Manager. IDs are never reused by the
// same manager, so a destroyed widget's ID does not alias a new one.
type ID uint64

// makeID combines the kind hash with the registration counter:
// counter (48 bits) + kind hash (16 bits).
func makeID(kind string, counter uint64) ID {
	h := fnv.New64a()
	h.Write([]byte(kind))
	return ID(counter<<16 | h.Sum64()&0xFFFF)
}

// Seq returns the registration counter encoded in the ID.
func (id ID) Seq() uint64 { return uint64(id) >> 16 }

func (id ID) String() string { return fmt.Sprintf("#%d", id.Seq()) }
