//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxEntryTitleLen = 100
	clockLayout      = "15:04"
	minutesPerDay    = 24 * 60
)

var weekdayLabels = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// TimetableEntry is a recurring weekly slot on a server's timetable.
// Minutes are counted from midnight; EndMinute is exclusive.
type TimetableEntry struct {
	ID          string    `json:"id"           db:"id"`
	ServerID    int64     `json:"server_id"    db:"server_id"`
	Weekday     int       `json:"weekday"      db:"weekday"`
	StartMinute int       `json:"start_minute" db:"start_minute"`
	EndMinute   int       `json:"end_minute"   db:"end_minute"`
	Title       string    `json:"title"        db:"title"`
	CreatedBy   string    `json:"created_by"   db:"created_by"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// WeekdayLabel returns the short Korean weekday name used by the timetable grid.
func (e *TimetableEntry) WeekdayLabel() string {
	if e.Weekday < 0 || e.Weekday >= len(weekdayLabels) {
		return ""
	}
	return weekdayLabels[e.Weekday]
}

// Start formats StartMinute as HH:MM.
func (e *TimetableEntry) Start() string { return formatClock(e.StartMinute) }

// End formats EndMinute as HH:MM.
func (e *TimetableEntry) End() string { return formatClock(e.EndMinute) }

// Overlaps reports whether two entries share any minute on the same weekday.
func (e *TimetableEntry) Overlaps(o *TimetableEntry) bool {
	if e == nil || o == nil || e.Weekday != o.Weekday {
		return false
	}
	return e.StartMinute < o.EndMinute && o.StartMinute < e.EndMinute
}

// CreateTimetableEntryRequest represents parameters to add a timetable entry.
type CreateTimetableEntryRequest struct {
	ServerID  int64  `json:"server_id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
	CreatedBy string `json:"created_by"`
}

// Validate validates the request and returns the entry it describes (without ID and CreatedAt).
func (r *CreateTimetableEntryRequest) Validate() (*TimetableEntry, error) {
	if r.ServerID <= 0 {
		return nil, errors.New("server_id is required")
	}
	if r.Weekday < 0 || r.Weekday > 6 {
		return nil, errors.New("weekday must be between 0 and 6")
	}
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > maxEntryTitleLen {
		return nil, errors.New("title cannot exceed 100 characters")
	}
	start, err := parseClock(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := parseClock(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if start >= minutesPerDay {
		return nil, errors.New("start_time must be before 24:00")
	}
	if end <= start {
		return nil, errors.New("end_time must be after start_time")
	}
	return &TimetableEntry{
		ServerID:    r.ServerID,
		Weekday:     r.Weekday,
		StartMinute: start,
		EndMinute:   end,
		Title:       title,
		CreatedBy:   r.CreatedBy,
	}, nil
}

// parseClock parses HH:MM into minutes from midnight. 24:00 is accepted as an end-of-day marker.
func parseClock(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "24:00" {
		return minutesPerDay, nil
	}
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		return 0, errors.New("must be in HH:MM format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
