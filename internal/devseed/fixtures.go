package devseed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/target/serverboard/internal/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed default_fixtures.yaml
var defaultFixtures []byte

// Fixtures is the YAML document accepted by the admin seed command.
type Fixtures struct {
	Servers []ServerFixture `yaml:"servers"`
}

// ServerFixture describes one server together with its members, timetable and games.
type ServerFixture struct {
	model.CreateServerRequest `yaml:",inline"`

	Members   []string                  `yaml:"members,omitempty"`
	Timetable []EntryFixture            `yaml:"timetable,omitempty"`
	Games     []model.CreateGameRequest `yaml:"games,omitempty"`
}

// EntryFixture is a timetable slot; times use HH:MM.
type EntryFixture struct {
	Weekday int    `yaml:"weekday"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Title   string `yaml:"title"`
}

// request converts the fixture into a create request on behalf of the server owner.
func (e EntryFixture) request(serverID int64, owner string) model.CreateTimetableEntryRequest {
	return model.CreateTimetableEntryRequest{
		ServerID:  serverID,
		Weekday:   e.Weekday,
		StartTime: e.Start,
		EndTime:   e.End,
		Title:     e.Title,
		CreatedBy: owner,
	}
}

// Load decodes and validates fixtures. Unknown keys are rejected so typos surface early.
func Load(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixtures file is empty")
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Default returns the fixtures bundled with the binary.
func Default() (*Fixtures, error) {
	return Load(bytes.NewReader(defaultFixtures))
}

// Validate checks server records and rejects duplicate name/owner pairs.
// Timetable and game rows are validated when they are written.
func (f *Fixtures) Validate() error {
	if len(f.Servers) == 0 {
		return errors.New("fixtures define no servers")
	}
	seen := make(map[string]bool, len(f.Servers))
	var errs []error
	for i := range f.Servers {
		s := &f.Servers[i]
		if err := s.CreateServerRequest.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("servers[%d]: %w", i, err))
			continue
		}
		key := strings.TrimSpace(s.Owner) + "/" + strings.TrimSpace(s.Name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("servers[%d]: duplicate server %q for owner %q", i, s.Name, s.Owner))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}
