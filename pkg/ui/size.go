package ui

import "fmt"

// FormatSizeKB renders a size in KB the way the game's asset screen does:
// one decimal for KB and MB, two for GB.
func FormatSizeKB(kb float64) string {
	switch {
	case kb < 1024:
		return fmt.Sprintf("%.1fKB", kb)
	case kb < 1024*1024:
		return fmt.Sprintf("%.1fMB", kb/1024)
	default:
		return fmt.Sprintf("%.2fGB", kb/(1024*1024))
	}
}
