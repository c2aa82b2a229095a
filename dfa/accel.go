package dfa

import (
	"github.com/coregx/dnfa/alphabet"
	"github.com/coregx/dnfa/internal/conv"
)

// maxAccelBytes is the largest exit set simd.IndexAny can scan for.
const maxAccelBytes = 3

// accelerators finds states that loop on all but a few bytes. A search
// sitting in such a state can jump straight to the next exit byte.
func accelerators(classes *alphabet.ByteClasses, rows [][]StateID) [][]byte {
	accel := make([][]byte, len(rows))
	for s := 1; s < len(rows); s++ {
		self := StateID(conv.IntToUint32(s))
		var exits []byte
		loops := false
		for c, target := range rows[s] {
			if target == self {
				loops = true
				continue
			}
			exits = append(exits, classes.Elements(conv.IntToByte(c))...)
			if len(exits) > maxAccelBytes {
				break
			}
		}
		if loops && len(exits) > 0 && len(exits) <= maxAccelBytes {
			accel[s] = exits
		}
	}
	return accel
}
