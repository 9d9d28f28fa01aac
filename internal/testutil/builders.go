package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/target/serverboard/internal/domain/model"
)

var fixtureSeq atomic.Int64

// UniqueName returns prefix followed by a process-unique suffix.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), fixtureSeq.Add(1))
}

// ServerRequestBuilder builds CreateServerRequest values for tests.
type ServerRequestBuilder struct {
	req *model.CreateServerRequest
}

// NewServerRequest starts a builder owned by "alice" with a unique name.
func NewServerRequest() *ServerRequestBuilder {
	return &ServerRequestBuilder{req: &model.CreateServerRequest{
		Name:  UniqueName("server"),
		Owner: "alice",
	}}
}

// WithName sets the server name.
func (b *ServerRequestBuilder) WithName(name string) *ServerRequestBuilder {
	b.req.Name = name
	return b
}

// WithOwner sets the owner identity.
func (b *ServerRequestBuilder) WithOwner(owner string) *ServerRequestBuilder {
	b.req.Owner = owner
	return b
}

// WithDescription sets the description.
func (b *ServerRequestBuilder) WithDescription(desc string) *ServerRequestBuilder {
	b.req.Description = &desc
	return b
}

// Build returns the request.
func (b *ServerRequestBuilder) Build() *model.CreateServerRequest {
	return b.req
}

// Server returns an in-memory server record, as a repository would return it.
func Server(id int64, name, owner string) *model.Server {
	now := TestTime()
	return &model.Server{ID: id, Name: name, Owner: owner, CreatedAt: now, UpdatedAt: now}
}

// TimetableEntry returns an in-memory entry for weekday between HH:MM bounds given in minutes.
func TimetableEntry(serverID int64, weekday, start, end int) *model.TimetableEntry {
	return &model.TimetableEntry{
		ID:          fmt.Sprintf("00000000-0000-4000-8000-%012d", fixtureSeq.Add(1)),
		ServerID:    serverID,
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   end,
		Title:       "raid",
		CreatedBy:   "alice",
		CreatedAt:   TestTime(),
	}
}

// Game returns an in-memory game record.
func Game(serverID int64, name string, minPlayers, maxPlayers int) *model.Game {
	return &model.Game{
		ID:         fmt.Sprintf("00000000-0000-4000-9000-%012d", fixtureSeq.Add(1)),
		ServerID:   serverID,
		Name:       name,
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
		AddedBy:    "alice",
		CreatedAt:  TestTime(),
	}
}
