package budget

import (
	"fmt"
	"math"
	"strconv"
)

var byteUnits = []string{"bytes", "kB", "MB", "GB", "TB", "PB"}

// FormatBytes renders n with 1024-based units and at most two decimals:
// 512 → "512 bytes", 1536 → "1.5 kB", 1500 → "1.46 kB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 bytes"
	}
	v := float64(n)
	idx := 0
	for v >= 1024 && idx < len(byteUnits)-1 {
		v /= 1024
		idx++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[idx]
}

func maximumMessage(label string, limit, size int64) string {
	return fmt.Sprintf("Exceeded maximum budget for %s. Budget %s was exceeded by %s with a total of %s.",
		label, FormatBytes(limit), FormatBytes(size-limit), FormatBytes(size))
}

func minimumMessage(label string, limit, size int64) string {
	return fmt.Sprintf("Failed to meet minimum budget for %s. Budget %s was not met by %s with a total of %s.",
		label, FormatBytes(limit), FormatBytes(limit-size), FormatBytes(size))
}
