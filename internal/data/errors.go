package data

import apperrors "github.com/target/serverboard/internal/errors"

// Shared sentinel errors for data-layer repositories. They carry an AppError
// code so callers outside this package can classify them without importing it.
var (
	ErrServerNotFound = apperrors.NotFound("server not found")
	ErrMemberExists   = apperrors.Conflict("user is already a member of this server")

	ErrTimetableOverlap = apperrors.Conflict("timetable entry overlaps an existing entry")

	ErrGameNameExists = apperrors.Conflict("game with this name already exists on the server")
)
