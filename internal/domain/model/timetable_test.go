package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTimetableEntryRequest_Validate(t *testing.T) {
	base := CreateTimetableEntryRequest{
		ServerID:  42,
		Weekday:   5,
		StartTime: "20:00",
		EndTime:   "22:30",
		Title:     " 레이드 ",
		CreatedBy: "alice",
	}

	entry, err := base.Validate()
	require.NoError(t, err)
	assert.Equal(t, 20*60, entry.StartMinute)
	assert.Equal(t, 22*60+30, entry.EndMinute)
	assert.Equal(t, "레이드", entry.Title)
	assert.Equal(t, "금", entry.WeekdayLabel())
	assert.Equal(t, "20:00", entry.Start())
	assert.Equal(t, "22:30", entry.End())

	endOfDay := base
	endOfDay.EndTime = "24:00"
	entry, err = endOfDay.Validate()
	require.NoError(t, err)
	assert.Equal(t, 24*60, entry.EndMinute)

	tests := []struct {
		name   string
		mutate func(*CreateTimetableEntryRequest)
	}{
		{name: "missing server", mutate: func(r *CreateTimetableEntryRequest) { r.ServerID = 0 }},
		{name: "bad weekday", mutate: func(r *CreateTimetableEntryRequest) { r.Weekday = 7 }},
		{name: "empty title", mutate: func(r *CreateTimetableEntryRequest) { r.Title = "" }},
		{name: "bad start", mutate: func(r *CreateTimetableEntryRequest) { r.StartTime = "8pm" }},
		{name: "end before start", mutate: func(r *CreateTimetableEntryRequest) { r.EndTime = "19:00" }},
		{name: "start at end of day", mutate: func(r *CreateTimetableEntryRequest) { r.StartTime = "24:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := req.Validate()
			assert.Error(t, err)
		})
	}
}

func TestTimetableEntry_Overlaps(t *testing.T) {
	a := &TimetableEntry{Weekday: 1, StartMinute: 600, EndMinute: 720}

	assert.True(t, a.Overlaps(&TimetableEntry{Weekday: 1, StartMinute: 700, EndMinute: 800}))
	assert.False(t, a.Overlaps(&TimetableEntry{Weekday: 1, StartMinute: 720, EndMinute: 800}), "touching slots do not overlap")
	assert.False(t, a.Overlaps(&TimetableEntry{Weekday: 2, StartMinute: 600, EndMinute: 720}))
	assert.False(t, a.Overlaps(nil))
}
