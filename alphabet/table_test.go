package alphabet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseTableStep(t *testing.T) {
	ranges, err := Compact([]Range[int]{
		{Lo: 'a', Hi: 'z', Target: 1},
		{Lo: '0', Hi: '9', Target: 2},
	}, dead)
	require.NoError(t, err)

	table, err := NewSparseTable(ranges)
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	assert.Equal(t, 1, table.Step('q'))
	assert.Equal(t, 2, table.Step('0'))
	assert.Equal(t, dead, table.Step('A'))
	assert.Equal(t, dead, table.Step(0x00))
	assert.Equal(t, dead, table.Step(0xFF))
	assert.Equal(t, ranges, table.Ranges())
}

func TestSparseTableRejectsGaps(t *testing.T) {
	_, err := NewSparseTable([]Range[int]{{Lo: 0, Hi: 10, Target: 1}, {Lo: 12, Hi: 255, Target: 1}})
	assert.Error(t, err)

	_, err = NewSparseTable([]Range[int]{{Lo: 0, Hi: 10, Target: 1}})
	assert.Error(t, err)
}

// Wide tables take the binary search path; both paths must agree with the
// dense row they were packed from.
func TestPackMatchesDenseRow(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 100; iter++ {
		var row [256]uint32
		for b := range row {
			if rng.Intn(4) == 0 {
				row[b] = uint32(rng.Intn(5))
			} else if b > 0 {
				row[b] = row[b-1]
			}
		}
		table := Pack(&row)
		for b := 0; b < 256; b++ {
			require.Equal(t, row[b], table.Step(byte(b)), "byte 0x%02X", b)
		}
	}
}

func TestSparseTableString(t *testing.T) {
	table, err := NewSparseTable([]Range[int]{{Lo: 0, Hi: 0x40, Target: 0}, {Lo: 0x41, Hi: 0xFF, Target: 3}})
	require.NoError(t, err)
	assert.Equal(t, "[0x00,0x40]->0 [0x41,0xFF]->3", table.String())
}

func BenchmarkSparseTableStep(b *testing.B) {
	var row [256]uint32
	for i := range row {
		row[i] = uint32(i / 16)
	}
	table := Pack(&row)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.Step(byte(i))
	}
}
