package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// TimetableServiceOptions groups dependencies for TimetableService.
type TimetableServiceOptions struct {
	Entries core.TimetableRepository
	Members core.MemberRepository
	Logger  *slog.Logger
}

// TimetableService manages a server's weekly timetable.
type TimetableService struct {
	entries core.TimetableRepository
	members core.MemberRepository
	logger  *slog.Logger
}

// NewTimetableService constructs a new TimetableService.
func NewTimetableService(opts TimetableServiceOptions) *TimetableService {
	if opts.Entries == nil {
		panic("TimetableRepository is required")
	}
	if opts.Members == nil {
		panic("MemberRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TimetableService{entries: opts.Entries, members: opts.Members, logger: logger}
}

// List returns the entries of a server ordered by weekday and start.
func (s *TimetableService) List(ctx context.Context, serverID int64) ([]*model.TimetableEntry, error) {
	out, err := s.entries.ListByServer(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return out, nil
}

// Add validates and stores a new entry on behalf of the viewer, who must be a member.
// An entry sharing any minute with an existing one on the same weekday is a conflict.
func (s *TimetableService) Add(
	ctx context.Context,
	req model.CreateTimetableEntryRequest,
) (*model.TimetableEntry, error) {
	entry, err := req.Validate()
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	viewer, err := requireMember(ctx, s.members, req.ServerID)
	if err != nil {
		return nil, err
	}
	entry.CreatedBy = viewer

	existing, err := s.entries.ListByServer(ctx, req.ServerID)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	for _, e := range existing {
		if entry.Overlaps(e) {
			return nil, apperrors.Conflictf("overlaps %q (%s %s-%s)", e.Title, e.WeekdayLabel(), e.Start(), e.End())
		}
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("add timetable entry: %w", err)
	}
	s.logger.InfoContext(ctx, "timetable entry added",
		"server_id", created.ServerID, "entry_id", created.ID, "created_by", viewer)
	return created, nil
}

// Remove deletes one entry. The viewer must be a member.
func (s *TimetableService) Remove(ctx context.Context, key core.ServerItemKey) error {
	if _, err := requireMember(ctx, s.members, key.ServerID); err != nil {
		return err
	}
	ok, err := s.entries.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("remove timetable entry: %w", err)
	}
	if !ok {
		return apperrors.NotFound("timetable entry not found")
	}
	return nil
}
