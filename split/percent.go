package split

import (
	"math/bits"

	"github.com/holiman/uint256"
)

var percentageScale = uint256.NewInt(PercentageScale)

// Scale computes floor(amount * scaledPercent / PercentageScale). The
// multiplication is widened to 256 bits so the intermediate product cannot
// overflow for any uint64 amount. For scaledPercent <= PercentageScale the
// result fits in a uint64.
func Scale(amount uint64, scaledPercent uint32) uint64 {
	v := new(uint256.Int).SetUint64(amount)
	v.Mul(v, uint256.NewInt(uint64(scaledPercent)))
	v.Div(v, percentageScale)
	return v.Uint64()
}

// CheckedAdd returns a+b, or ErrAmountOverflow if the sum does not fit in a
// uint64. Balance accumulation must fail loudly rather than wrap.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}
