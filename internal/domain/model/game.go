//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxGameNameLen = 100
	maxGamePlayers = 100
)

// Game is a game a server plays together.
type Game struct {
	ID         string    `json:"id"          db:"id"`
	ServerID   int64     `json:"server_id"   db:"server_id"`
	Name       string    `json:"name"        db:"name"`
	MinPlayers int       `json:"min_players" db:"min_players"`
	MaxPlayers int       `json:"max_players" db:"max_players"`
	AddedBy    string    `json:"added_by"    db:"added_by"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// GameListOptions controls listing games for a server.
// Filter is an optional JMESPath expression evaluated against the JSON form of the list,
// e.g. "[?max_players > `4`]".
type GameListOptions struct {
	ServerID int64
	Filter   string
}

// CreateGameRequest represents parameters to add a Game to a server.
type CreateGameRequest struct {
	ServerID   int64  `json:"server_id"             yaml:"-"`
	Name       string `json:"name"                  yaml:"name"`
	MinPlayers int    `json:"min_players,omitempty" yaml:"min_players,omitempty"`
	MaxPlayers int    `json:"max_players,omitempty" yaml:"max_players,omitempty"`
	AddedBy    string `json:"added_by"              yaml:"-"`
}

// Validate validates CreateGameRequest, defaulting player bounds to 1..MinPlayers.
func (r *CreateGameRequest) Validate() error {
	if r.ServerID <= 0 {
		return errors.New("server_id is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxGameNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	if r.MinPlayers == 0 {
		r.MinPlayers = 1
	}
	if r.MaxPlayers == 0 {
		r.MaxPlayers = r.MinPlayers
	}
	if r.MinPlayers < 1 {
		return errors.New("min_players must be at least 1")
	}
	if r.MaxPlayers < r.MinPlayers {
		return errors.New("max_players must be >= min_players")
	}
	if r.MaxPlayers > maxGamePlayers {
		return errors.New("max_players cannot exceed 100")
	}
	return nil
}
