package table

import "time"

func maxDur(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
