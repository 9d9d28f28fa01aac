package core

import (
	"context"

	"github.com/target/serverboard/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces, not on the data package.

// ServerRepository defines the interface for server data operations.
type ServerRepository interface {
	// Create inserts the server and the owner's membership in one transaction.
	Create(ctx context.Context, req *model.CreateServerRequest) (*model.Server, error)
	GetByID(ctx context.Context, id int64) (*model.Server, error)
	List(ctx context.Context, opts model.ServerListOptions) ([]*model.Server, error)
	ListForMember(ctx context.Context, userID string) ([]*model.Server, error)
	Update(ctx context.Context, id int64, req model.UpdateServerRequest) (*model.Server, error)
	// Delete removes the server and, by cascade, its members, timetable and games.
	Delete(ctx context.Context, id int64) (bool, error)
}

// MembershipKey identifies one user's membership in one server.
type MembershipKey struct {
	ServerID int64
	UserID   string
}

// MemberRepository defines the interface for server membership data operations.
type MemberRepository interface {
	Add(ctx context.Context, key MembershipKey) error
	Remove(ctx context.Context, key MembershipKey) (bool, error)
	IsMember(ctx context.Context, key MembershipKey) (bool, error)
	ListByServer(ctx context.Context, serverID int64) ([]*model.ServerMember, error)
	CountByServer(ctx context.Context, serverID int64) (int, error)
}

// ServerItemKey identifies a timetable entry or game that belongs to a server.
type ServerItemKey struct {
	ServerID int64
	ID       string
}

// TimetableRepository defines the interface for timetable data operations.
type TimetableRepository interface {
	ListByServer(ctx context.Context, serverID int64) ([]*model.TimetableEntry, error)
	CountByServer(ctx context.Context, serverID int64) (int, error)
	Create(ctx context.Context, entry *model.TimetableEntry) (*model.TimetableEntry, error)
	Delete(ctx context.Context, key ServerItemKey) (bool, error)
}

// GameRepository defines the interface for game data operations.
type GameRepository interface {
	ListByServer(ctx context.Context, serverID int64) ([]*model.Game, error)
	CountByServer(ctx context.Context, serverID int64) (int, error)
	Create(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error)
	Delete(ctx context.Context, key ServerItemKey) (bool, error)
}
