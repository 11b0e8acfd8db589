package field

import (
	"math"
	"strconv"
)

const labelPrefix = "focal distance = "

// FormatLabel renders the focal distance in hundreds, rounded to two
// decimals without trailing zeros: 100 → "focal distance = 1".
func FormatLabel(focal float64) string {
	v := math.Round(focal) / 100
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return labelPrefix + strconv.FormatFloat(v, 'f', -1, 64)
}
