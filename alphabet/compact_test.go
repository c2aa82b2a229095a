package alphabet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dead = 0

func TestCompactScenario(t *testing.T) {
	pairs := []Range[int]{
		{Lo: 0x43, Hi: 0x43, Target: 2},
		{Lo: 0x41, Hi: 0x41, Target: 1},
		{Lo: 0x42, Hi: 0x42, Target: 1},
	}
	got, err := Compact(pairs, dead)
	require.NoError(t, err)

	assert.Equal(t, []Range[int]{
		{Lo: 0x00, Hi: 0x40, Target: dead},
		{Lo: 0x41, Hi: 0x42, Target: 1},
		{Lo: 0x43, Hi: 0x43, Target: 2},
		{Lo: 0x44, Hi: 0xFF, Target: dead},
	}, got)
}

func TestCompactEmpty(t *testing.T) {
	got, err := Compact[int](nil, dead)
	require.NoError(t, err)
	assert.Equal(t, []Range[int]{{Lo: 0x00, Hi: 0xFF, Target: dead}}, got)
}

func TestCompactEdges(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Range[int]
		want  []Range[int]
	}{
		{
			name:  "full range",
			pairs: []Range[int]{{Lo: 0, Hi: 255, Target: 7}},
			want:  []Range[int]{{Lo: 0, Hi: 255, Target: 7}},
		},
		{
			name:  "first and last byte",
			pairs: []Range[int]{{Lo: 255, Hi: 255, Target: 3}, {Lo: 0, Hi: 0, Target: 3}},
			want: []Range[int]{
				{Lo: 0, Hi: 0, Target: 3},
				{Lo: 1, Hi: 254, Target: dead},
				{Lo: 255, Hi: 255, Target: 3},
			},
		},
		{
			name:  "overlap with same target merges",
			pairs: []Range[int]{{Lo: 'a', Hi: 'm', Target: 1}, {Lo: 'f', Hi: 'z', Target: 1}},
			want: []Range[int]{
				{Lo: 0, Hi: 'a' - 1, Target: dead},
				{Lo: 'a', Hi: 'z', Target: 1},
				{Lo: 'z' + 1, Hi: 255, Target: dead},
			},
		},
		{
			name:  "nested range with same target",
			pairs: []Range[int]{{Lo: 'a', Hi: 'z', Target: 1}, {Lo: 'c', Hi: 'd', Target: 1}},
			want: []Range[int]{
				{Lo: 0, Hi: 'a' - 1, Target: dead},
				{Lo: 'a', Hi: 'z', Target: 1},
				{Lo: 'z' + 1, Hi: 255, Target: dead},
			},
		},
		{
			name:  "explicit dead target merges with gaps",
			pairs: []Range[int]{{Lo: 10, Hi: 20, Target: dead}},
			want:  []Range[int]{{Lo: 0, Hi: 255, Target: dead}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compact(tt.pairs, dead)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompactOverlapConflict(t *testing.T) {
	_, err := Compact([]Range[int]{
		{Lo: 'a', Hi: 'm', Target: 1},
		{Lo: 'f', Hi: 'z', Target: 2},
	}, dead)
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = Compact([]Range[int]{
		{Lo: 'a', Hi: 'z', Target: 1},
		{Lo: 'c', Hi: 'c', Target: 2},
	}, dead)
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestCompactRejectsInvertedRange(t *testing.T) {
	_, err := Compact([]Range[int]{{Lo: 9, Hi: 3, Target: 1}}, dead)
	assert.Error(t, err)
}

// Decompacting must reproduce the target of every byte in the raw input.
func TestCompactRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		var raw [256]int
		var pairs []Range[int]
		for i := 0; i < rng.Intn(40); i++ {
			b := byte(rng.Intn(256))
			if raw[b] != dead {
				continue
			}
			target := 1 + rng.Intn(4)
			raw[b] = target
			pairs = append(pairs, Range[int]{Lo: b, Hi: b, Target: target})
		}

		ranges, err := Compact(pairs, dead)
		require.NoError(t, err)
		assert.Equal(t, raw, Expand(ranges))

		// Minimality: no two neighbours share a target.
		for i := 1; i < len(ranges); i++ {
			assert.NotEqual(t, ranges[i-1].Target, ranges[i].Target)
			assert.Equal(t, int(ranges[i-1].Hi)+1, int(ranges[i].Lo))
		}
		assert.Equal(t, ranges, CompactTable(&raw))
	}
}

func FuzzCompact(f *testing.F) {
	f.Add([]byte{0x41, 1, 0x42, 1, 0x43, 2})
	f.Fuzz(func(t *testing.T, data []byte) {
		var raw [256]byte
		var pairs []Range[byte]
		for i := 0; i+1 < len(data); i += 2 {
			b, target := data[i], data[i+1]
			if raw[b] != 0 || target == 0 {
				continue
			}
			raw[b] = target
			pairs = append(pairs, Range[byte]{Lo: b, Hi: b, Target: target})
		}
		ranges, err := Compact(pairs, 0)
		if err != nil {
			t.Fatal(err)
		}
		if Expand(ranges) != raw {
			t.Fatalf("round trip mismatch for %v", pairs)
		}
	})
}
