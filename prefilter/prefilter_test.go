package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/dnfa/nfa"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		pattern string
		kind    string
		needle  string
	}{
		{"hello|help", "memmem", "hel"},
		{"abc+", "memmem", "abc"},
		{"a[bc]", "memchr", "a"},
		{"[xyz]+", "memchr", "xyz"},
		{"(?i)k", "memchr", "Kk\xe2"}, // the Kelvin sign starts with 0xE2
		{"[a-z]+", "none", ""},
		{"a*", "none", ""}, // matches the empty string
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := nfa.Compile(tt.pattern)
			require.NoError(t, err)
			pf := Select(n)
			switch tt.kind {
			case "memmem":
				require.IsType(t, &memmemPrefilter{}, pf)
				assert.Equal(t, tt.needle, string(pf.(*memmemPrefilter).needle))
			case "memchr":
				require.IsType(t, &memchrPrefilter{}, pf)
				assert.Equal(t, tt.needle, string(pf.(*memchrPrefilter).needles))
			default:
				assert.Nil(t, pf)
			}
		})
	}
}

func TestFind(t *testing.T) {
	hay := []byte("say hello, help!")

	mm := newMemmemPrefilter([]byte("hel"))
	assert.Equal(t, 4, mm.Find(hay, 0))
	assert.Equal(t, 4, mm.Find(hay, 4))
	assert.Equal(t, 11, mm.Find(hay, 5))
	assert.Equal(t, -1, mm.Find(hay, 12))
	assert.Equal(t, -1, mm.Find(hay, len(hay)))
	assert.GreaterOrEqual(t, mm.HeapBytes(), 3)

	mc := newMemchrPrefilter([]byte("!,"))
	assert.Equal(t, 9, mc.Find(hay, 0))
	assert.Equal(t, 15, mc.Find(hay, 10))
	assert.Equal(t, -1, mc.Find(hay, -1))
}

func TestDictionary(t *testing.T) {
	d, err := NewDictionary([][]byte{[]byte("cat"), []byte("category"), []byte("dog")})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 8, d.MaxLen())

	hay := []byte("the dog and the category")
	pos := d.Find(hay, 0)
	require.NotEqual(t, -1, pos)
	assert.LessOrEqual(t, pos, 4, "no word starts before the candidate")
	assert.Equal(t, -1, d.Find([]byte("nothing here"), 0))
	assert.Equal(t, -1, d.Find(hay, len(hay)))
	assert.True(t, d.IsMatch(hay))
	assert.False(t, d.IsMatch([]byte("ca do")))
	assert.Positive(t, d.HeapBytes())

	empty, err := NewDictionary([][]byte{[]byte("a"), {}})
	require.NoError(t, err)
	assert.Nil(t, empty)
}
