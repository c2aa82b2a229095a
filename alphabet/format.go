package alphabet

import (
	"fmt"
	"strings"
)

// FormatByte renders b as itself when printable, otherwise as \xNN.
func FormatByte(b byte) string {
	if b >= 0x21 && b <= 0x7E && b != '\\' && b != '-' && b != '[' && b != ']' {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02X", b)
}

// FormatRanges renders byte ranges as a character class, e.g. "[a-cx]".
// A single range of one byte renders without brackets.
func FormatRanges(ranges [][2]byte) string {
	if len(ranges) == 1 && ranges[0][0] == ranges[0][1] {
		return FormatByte(ranges[0][0])
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range ranges {
		sb.WriteString(FormatByte(r[0]))
		if r[0] != r[1] {
			sb.WriteByte('-')
			sb.WriteString(FormatByte(r[1]))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
