package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name    string
		amount  uint64
		percent uint32
		want    uint64
	}{
		{"zero amount", 0, 500_000, 0},
		{"zero percent", 1000, 0, 0},
		{"identity at full scale", 12345, PercentageScale, 12345},
		{"thirty percent of 1000", 1000, 300_000, 300},
		{"seventy percent of 1000", 1000, 700_000, 700},
		{"five percent of 1000", 1000, 50_000, 50},
		{"truncates toward zero", 999, 500_000, 499},
		{"one millionth", 999_999, 1, 0},
		{"one millionth exact", 1_000_000, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scale(tt.amount, tt.percent))
		})
	}
}

// The intermediate product amount*percent exceeds 64 bits here; a narrow
// multiplication would wrap and return garbage.
func TestScale_WideIntermediate(t *testing.T) {
	const amount = math.MaxUint64

	assert.Equal(t, uint64(amount), Scale(amount, PercentageScale))

	// floor(MaxUint64 * 999999 / 1000000), computed independently:
	// MaxUint64 - ceil(MaxUint64/1000000).
	want := uint64(amount) - (uint64(amount)/1_000_000 + 1)
	assert.Equal(t, want, Scale(amount, PercentageScale-1))
}

func TestScale_Monotonic(t *testing.T) {
	const amount = 987_654_321
	prev := uint64(0)
	for p := uint32(0); p <= PercentageScale; p += 10_007 {
		got := Scale(amount, p)
		assert.GreaterOrEqual(t, got, prev, "percent %d", p)
		prev = got
	}
}

func TestCheckedAdd(t *testing.T) {
	sum, err := CheckedAdd(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum)

	sum, err = CheckedAdd(math.MaxUint64, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}
