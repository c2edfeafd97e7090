package tui

import "strings"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// ease moves cur a third of the way to target, always by at least one line.
func ease(cur, target int) int {
	d := target - cur
	switch {
	case d == 0:
		return cur
	case abs(d) < 3:
		if d > 0 {
			return cur + 1
		}
		return cur - 1
	}
	return cur + d/3
}
