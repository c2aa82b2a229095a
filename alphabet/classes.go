package alphabet

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class when no transition in the automaton ever tells
// them apart, so a DFA only needs one table column per class instead of
// one per byte. Classes are built from range boundaries, which makes every
// class a single contiguous byte range and class numbers non-decreasing in
// byte order.
//
// Example for the pattern [a-z]+:
//   - Class 0: bytes 0x00-0x60
//   - Class 1: bytes 0x61-0x7a
//   - Class 2: bytes 0x7b-0xff
type ByteClasses struct {
	classes [256]byte
}

// SingletonByteClasses returns classes where each byte is its own class.
// This disables alphabet reduction.
func SingletonByteClasses() ByteClasses {
	var bc ByteClasses
	for i := 0; i < 256; i++ {
		bc.classes[i] = byte(i)
	}
	return bc
}

// Get returns the equivalence class of b.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of equivalence classes.
func (bc *ByteClasses) AlphabetLen() int {
	// Classes are non-decreasing, so the last byte holds the highest class.
	return int(bc.classes[255]) + 1
}

// IsSingleton reports whether no alphabet reduction is possible.
func (bc *ByteClasses) IsSingleton() bool {
	return bc.AlphabetLen() == 256
}

// Representatives returns the lowest byte of every class, in class order.
// Any representative stands in for every byte of its class when computing
// transitions.
func (bc *ByteClasses) Representatives() []byte {
	reps := make([]byte, 0, bc.AlphabetLen())
	for b := 0; b < 256; b++ {
		if b == 0 || bc.classes[b] != bc.classes[b-1] {
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// Bounds returns the inclusive byte range covered by class.
// The result is meaningless for a class >= AlphabetLen().
func (bc *ByteClasses) Bounds(class byte) (lo, hi byte) {
	found := false
	for b := 0; b < 256; b++ {
		if bc.classes[b] != class {
			continue
		}
		if !found {
			lo, found = byte(b), true
		}
		hi = byte(b)
	}
	return lo, hi
}

// Elements returns every byte in class.
func (bc *ByteClasses) Elements(class byte) []byte {
	var elems []byte
	for b := 0; b < 256; b++ {
		if bc.classes[b] == class {
			elems = append(elems, byte(b))
		}
	}
	return elems
}

// ByteClassSet collects class boundaries while transitions are added.
//
// For every range [lo, hi] the bytes lo-1 and hi become boundaries: the
// byte after a boundary starts a new class.
type ByteClassSet struct {
	bits [4]uint64
}

// NewByteClassSet creates an empty set with no boundaries.
func NewByteClassSet() *ByteClassSet {
	return &ByteClassSet{}
}

// SetRange marks [start, end] as a range whose bytes may transition
// differently from their neighbours.
func (bcs *ByteClassSet) SetRange(start, end byte) {
	if start > 0 {
		bcs.setBit(start - 1)
	}
	bcs.setBit(end)
}

// SetByte is SetRange(b, b).
func (bcs *ByteClassSet) SetByte(b byte) {
	bcs.SetRange(b, b)
}

func (bcs *ByteClassSet) setBit(b byte) {
	bcs.bits[b/64] |= 1 << (b % 64)
}

func (bcs *ByteClassSet) getBit(b byte) bool {
	return bcs.bits[b/64]&(1<<(b%64)) != 0
}

// Merge adds the boundaries of other to bcs.
func (bcs *ByteClassSet) Merge(other *ByteClassSet) {
	for i := range bcs.bits {
		bcs.bits[i] |= other.bits[i]
	}
}

// ByteClasses converts the boundaries into a class lookup table.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)
	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		// A boundary at 255 would overflow the class counter; nothing follows it.
		if b < 255 && bcs.getBit(byte(b)) {
			class++
		}
	}
	return bc
}
