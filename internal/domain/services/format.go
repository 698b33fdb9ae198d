package services

import "fmt"

// FormatSize renders a byte count in human-readable units.
func FormatSize(size int64) string {
	f := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if f < 1024.0 {
			return fmt.Sprintf("%.1f %s", f, unit)
		}
		f /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", f)
}
