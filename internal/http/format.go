package httpx

import (
	"strconv"
	"time"
)

const (
	friendlyLayout = "2006년 1월 2일 15:04"
	justNow        = "방금 전"
)

// friendlyTime formats t in local time. The zero time renders as "".
func friendlyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(friendlyLayout)
}

// relativeTime describes how long before now t was. Future times read as
// "방금 전"; anything past a week falls back to friendlyTime.
func relativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return justNow
	case diff < time.Hour:
		return strconv.Itoa(int(diff.Minutes())) + "분 전"
	case diff < 24*time.Hour:
		return strconv.Itoa(int(diff.Hours())) + "시간 전"
	case diff < 7*24*time.Hour:
		return strconv.Itoa(int(diff.Hours()/24)) + "일 전"
	default:
		return friendlyTime(t)
	}
}
