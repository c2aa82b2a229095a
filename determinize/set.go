package determinize

import (
	"encoding/binary"
	"slices"
	"strconv"
	"strings"

	"github.com/coregx/dnfa/nfa"
)

// Set is a canonical set of NFA states: sorted ascending, no duplicates.
// The empty set is the meaning of the dead state.
type Set []nfa.StateID

// Key encodes the set as a string usable as a map key. Equal sets always
// produce equal keys and distinct sets distinct keys.
func (s Set) Key() string {
	if len(s) == 0 {
		return ""
	}
	buf := make([]byte, 0, 4*len(s))
	for _, id := range s {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
	}
	return string(buf)
}

// DecodeKey is the inverse of Set.Key.
func DecodeKey(key string) Set {
	if len(key) == 0 {
		return nil
	}
	s := make(Set, len(key)/4)
	for i := range s {
		s[i] = nfa.StateID(binary.LittleEndian.Uint32([]byte(key[4*i : 4*i+4])))
	}
	return s
}

// Contains reports whether id is a member.
func (s Set) Contains(id nfa.StateID) bool {
	_, ok := slices.BinarySearch(s, id)
	return ok
}

func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
