package util

import (
	"time"

	"fundflow/global"
)

//Today returns the current calendar day key, e.g. "2026-08-26".
func Today() string {
	return time.Now().Format(global.DateFormat)
}

//TimeStr returns the current date and full timestamp strings.
func TimeStr() (d, t string) {
	now := time.Now()
	return now.Format(global.DateFormat), now.Format(global.TimeFormat)
}
