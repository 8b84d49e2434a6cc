// Package util holds small formatting helpers shared by the screens.
package util

import (
	"fmt"
	"math"
)

// FormatSeconds formats simulated seconds as m:ss.t, keeping tenths since
// runs are often only a few seconds long.
func FormatSeconds(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	tenths := int(math.Round(sec * 10))
	m := tenths / 600
	s := (tenths % 600) / 10
	return fmt.Sprintf("%d:%02d.%d", m, s, tenths%10)
}
