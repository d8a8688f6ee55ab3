// Package humanize formats byte counts for log lines, e.g. rebuild summaries.
package humanize

import (
	"fmt"
	"strings"
)

const (
	byteUnit = 1.0 << (10 * iota)
	kibibyte
	mebibyte
	gibibyte
)

// Bytes renders n as a short human string, e.g. "1.50 GB".
func Bytes(n uint64) string {
	if n == 0 {
		return "0 B"
	}

	unit := "B"
	value := float32(n)
	switch {
	case n >= gibibyte:
		unit = "GB"
		value /= gibibyte
	case n >= mebibyte:
		unit = "MB"
		value /= mebibyte
	case n >= kibibyte:
		unit = "KB"
		value /= kibibyte
	}

	s := strings.TrimSuffix(fmt.Sprintf("%.2f", value), ".00")
	return fmt.Sprintf("%s %s", s, unit)
}
