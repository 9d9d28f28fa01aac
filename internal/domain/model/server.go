//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxServerNameLen        = 100
	maxServerDescriptionLen = 1000
)

// Server is a community scheduling server. Owner holds the user id of the member who created it.
type Server struct {
	ID          int64     `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Owner       string    `json:"owner"                 db:"owner"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// OwnedBy reports whether the given viewer identity owns the server.
// An empty viewer never owns a server.
func (s *Server) OwnedBy(viewer string) bool {
	if s == nil || viewer == "" {
		return false
	}
	return s.Owner == viewer
}

// ServerMember is a user's membership in a server.
type ServerMember struct {
	ServerID int64     `json:"server_id" db:"server_id"`
	UserID   string    `json:"user_id"   db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// ServerOverview aggregates what the overview widget shows next to the server record.
type ServerOverview struct {
	Server      *Server         `json:"server"`
	Members     []*ServerMember `json:"members"`
	MemberCount int             `json:"member_count"`
	GameCount   int             `json:"game_count"`
	EntryCount  int             `json:"entry_count"`
}

// CreateServerRequest represents parameters to create a Server.
type CreateServerRequest struct {
	Name        string  `json:"name"                  yaml:"name"`
	Owner       string  `json:"owner"                 yaml:"owner"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate validates CreateServerRequest.
func (r *CreateServerRequest) Validate() error {
	if err := validateServerName(r.Name); err != nil {
		return err
	}
	if strings.TrimSpace(r.Owner) == "" {
		return errors.New("owner is required")
	}
	return validateServerDescription(r.Description)
}

// UpdateServerRequest represents parameters to update a Server. Ownership cannot be changed.
type UpdateServerRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateServerRequest.
func (r *UpdateServerRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil
}

// Validate validates UpdateServerRequest, ensuring at least one field is set and values are sane.
func (r *UpdateServerRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateServerName(*r.Name); err != nil {
			return err
		}
	}
	return validateServerDescription(r.Description)
}

func validateServerName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(n) > maxServerNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	return nil
}

func validateServerDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > maxServerDescriptionLen {
		return errors.New("description cannot exceed 1000 characters")
	}
	return nil
}

// ServerListOptions filters the admin server listing.
type ServerListOptions struct {
	Owner  string
	Q      string
	Limit  int
	Offset int
}
