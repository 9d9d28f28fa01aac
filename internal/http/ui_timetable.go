package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/domain/serverview"
)

const (
	msgTimetableFailed   = "시간표를 불러오지 못했습니다."
	msgEntryAdded        = "일정이 추가되었습니다"
	msgEntryRemoved      = "일정이 삭제되었습니다"
	msgEntryRemoveFailed = "일정 삭제 실패"
)

// weekdayOrder lists weekdays Monday first, the way the grid is drawn.
//
//nolint:gochecknoglobals // static read-only lookup
var weekdayOrder = [...]int{1, 2, 3, 4, 5, 6, 0}

// TimetableDay is one column of the weekly grid.
type TimetableDay struct {
	Weekday int
	Label   string
	Entries []*model.TimetableEntry
}

// groupByWeekday buckets entries into Monday-first day columns, keeping their order.
func groupByWeekday(entries []*model.TimetableEntry) []TimetableDay {
	byDay := make(map[int][]*model.TimetableEntry, len(weekdayOrder))
	for _, e := range entries {
		byDay[e.Weekday] = append(byDay[e.Weekday], e)
	}
	days := make([]TimetableDay, 0, len(weekdayOrder))
	for _, wd := range weekdayOrder {
		label := (&model.TimetableEntry{Weekday: wd}).WeekdayLabel()
		days = append(days, TimetableDay{Weekday: wd, Label: label, Entries: byDay[wd]})
	}
	return days
}

// timetableData builds the widget data, loading the current entries.
func (h *UIHandlers) timetableData(r *http.Request, serverID int64) *TemplateDataBuilder {
	data := NewTemplateData(r, PageMeta{}).With("ServerID", serverID).With("Form", map[string]string{})
	entries, err := h.Timetable.List(r.Context(), serverID)
	if err != nil {
		h.logger().WarnContext(r.Context(), "timetable load failed", "server_id", serverID, "error", err)
		return data.WithError(msgTimetableFailed).With("Days", groupByWeekday(nil))
	}
	return data.With("Days", groupByWeekday(entries)).With("EntryCount", len(entries))
}

// ServerTimetable renders the weekly timetable widget.
func (h *UIHandlers) ServerTimetable(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}
	h.renderFragment(w, r, FragmentOpts{Name: "server-timetable", Data: h.timetableData(r, id).Build()})
}

// ServerTimetableAdd adds an entry and re-renders the widget.
func (h *UIHandlers) ServerTimetableAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}

	form := map[string]string{
		"weekday":    strings.TrimSpace(r.FormValue("weekday")),
		"start_time": strings.TrimSpace(r.FormValue("start_time")),
		"end_time":   strings.TrimSpace(r.FormValue("end_time")),
		"title":      strings.TrimSpace(r.FormValue("title")),
	}
	weekday, err := strconv.Atoi(form["weekday"])
	if err != nil {
		weekday = -1
	}

	_, err = h.Timetable.Add(r.Context(), model.CreateTimetableEntryRequest{
		ServerID:  id,
		Weekday:   weekday,
		StartTime: form["start_time"],
		EndTime:   form["end_time"],
		Title:     form["title"],
	})
	if err != nil {
		h.logger().InfoContext(r.Context(), "timetable add rejected", "server_id", id, "error", err)
		existing := h.timetableData(r, id).Build()
		RenderError(ErrorOpts{
			W:        w,
			R:        r,
			Err:      err,
			Renderer: h.fragmentRenderer("server-timetable"),
			Data: map[string]any{
				"ServerID": id,
				"Days":     existing["Days"],
				"Form":     form,
			},
			ShowToast: true,
		})
		return
	}

	triggerToast(w, toast{Message: msgEntryAdded, Type: toastSuccess})
	h.renderFragment(w, r, FragmentOpts{Name: "server-timetable", Data: h.timetableData(r, id).Build()})
}

// ServerTimetableRemove deletes one entry and re-renders the widget.
func (h *UIHandlers) ServerTimetableRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	entryID := strings.TrimSpace(r.PathValue("entryID"))
	if !ok || entryID == "" {
		h.renderInvalid(w, r)
		return
	}

	if err := h.Timetable.Remove(r.Context(), core.ServerItemKey{ServerID: id, ID: entryID}); err != nil {
		h.logger().WarnContext(r.Context(), "timetable remove failed",
			"server_id", id, "entry_id", entryID, "error", err)
		triggerToast(w, toast{Message: msgEntryRemoveFailed, Description: userMessage(err), Type: toastError})
	} else {
		triggerToast(w, toast{Message: msgEntryRemoved, Type: toastSuccess})
	}
	h.renderFragment(w, r, FragmentOpts{Name: "server-timetable", Data: h.timetableData(r, id).Build()})
}
