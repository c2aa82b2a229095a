package dnfa

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Leftmost-longest matching agrees with regexp's Longest mode for patterns
// without assertions. Haystacks stay ASCII: after an empty match regexp
// advances one rune and this package one byte.

var compatPatterns = []string{
	`hello`,
	`[a-z]+`,
	`\d+`,
	`\w+@\w+\.com`,
	`a*`,
	`a+?`,
	`(a|ab)(c|bcd)`,
	`x*y*`,
	`[^ ]+`,
	`(foo|foobar)baz?`,
	`\s+`,
	`a{2,4}`,
	`(?i)hello`,
	`.+`,
	`(?s).`,
	`[[:upper:]][[:lower:]]*`,
}

var compatHaystacks = []string{
	"",
	"hello world",
	"abcd",
	"aaa bbb aaaaa",
	"foobarbaz foobaz foobar",
	"mail me@example.com now",
	"12 345 6789",
	"HeLLo hello HELLO",
	"line1\nline2",
	"xyxyyx",
	"Alice and Bob",
}

func stdlibMatches(re *regexp.Regexp, haystack string) []Match {
	var out []Match
	for _, loc := range re.FindAllStringIndex(haystack, -1) {
		out = append(out, Match{Start: loc[0], End: loc[1]})
	}
	return out
}

func TestStdlibCompat(t *testing.T) {
	for _, pattern := range compatPatterns {
		t.Run(pattern, func(t *testing.T) {
			std := regexp.MustCompile(pattern)
			std.Longest()

			for _, det := range []Determinization{Eager, Lazy} {
				re, err := Compile(pattern, WithDeterminization(det))
				require.NoError(t, err)
				for _, h := range compatHaystacks {
					assert.Equal(t, stdlibMatches(std, h), re.FindAll([]byte(h), -1), "%v %q", det, h)
					assert.Equal(t, std.MatchString(h), re.MatchString(h), "%v %q", det, h)
				}
			}
		})
	}
}

// FuzzFindAllStdlib compares FindAll with regexp's leftmost-longest
// FindAllStringIndex.
//
//	go test -fuzz=FuzzFindAllStdlib -fuzztime=30s
func FuzzFindAllStdlib(f *testing.F) {
	for i, p := range compatPatterns {
		f.Add(p, compatHaystacks[i%len(compatHaystacks)])
	}

	f.Fuzz(func(t *testing.T, pattern, haystack string) {
		for i := 0; i < len(haystack); i++ {
			if haystack[i] >= 0x80 {
				t.Skip("non-ASCII haystack")
			}
		}
		std, err := regexp.Compile(pattern)
		if err != nil {
			t.Skip()
		}
		std.Longest()
		re, err := Compile(pattern, WithStateLimit(2_000))
		if err != nil {
			t.Skip()
		}

		want := stdlibMatches(std, haystack)
		got := re.FindAll([]byte(haystack), -1)
		if len(want) != len(got) {
			t.Fatalf("%q on %q: got %v, want %v", pattern, haystack, got, want)
		}
		for i := range want {
			if want[i].Start != got[i].Start || want[i].End != got[i].End {
				t.Fatalf("%q on %q: got %v, want %v", pattern, haystack, got, want)
			}
		}
	})
}
