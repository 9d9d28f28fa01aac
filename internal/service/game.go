package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// GameServiceOptions groups dependencies for GameService.
type GameServiceOptions struct {
	Games     core.GameRepository
	Members   core.MemberRepository
	Evaluator JMESPathEvaluator
}

// GameService manages the games a server plays.
type GameService struct {
	games   core.GameRepository
	members core.MemberRepository
	jems    JMESPathEvaluator
	logger  *slog.Logger
}

// NewGameService constructs a new GameService.
func NewGameService(opts GameServiceOptions) *GameService {
	if opts.Games == nil {
		panic("GameRepository is required")
	}
	if opts.Members == nil {
		panic("MemberRepository is required")
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	return &GameService{
		games:   opts.Games,
		members: opts.Members,
		jems:    jems,
		logger:  slog.Default().With("component", "game_service"),
	}
}

// List returns a server's games. A non-empty Filter is a JMESPath expression applied
// to the JSON form of the list; it must evaluate to a list of games.
func (s *GameService) List(ctx context.Context, opts model.GameListOptions) ([]*model.Game, error) {
	filter := strings.TrimSpace(opts.Filter)
	if err := s.jems.Validate(filter); err != nil {
		return nil, apperrors.ValidationField("filter", "invalid filter expression: "+err.Error())
	}
	games, err := s.games.ListByServer(ctx, opts.ServerID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	if filter == "" {
		return games, nil
	}
	return s.applyFilter(filter, games)
}

// Add stores a game on behalf of the viewer, who must be a member.
func (s *GameService) Add(ctx context.Context, req model.CreateGameRequest) (*model.Game, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	viewer, err := requireMember(ctx, s.members, req.ServerID)
	if err != nil {
		return nil, err
	}
	req.AddedBy = viewer
	g, err := s.games.Create(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("add game: %w", err)
	}
	s.logger.InfoContext(ctx, "game added", "server_id", g.ServerID, "game", g.Name, "added_by", viewer)
	return g, nil
}

// Remove deletes one game. The viewer must be a member.
func (s *GameService) Remove(ctx context.Context, key core.ServerItemKey) error {
	if _, err := requireMember(ctx, s.members, key.ServerID); err != nil {
		return err
	}
	ok, err := s.games.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("remove game: %w", err)
	}
	if !ok {
		return apperrors.NotFound("game not found")
	}
	return nil
}

// applyFilter round-trips games through JSON so the expression sees the same
// field names the API exposes.
func (s *GameService) applyFilter(expr string, games []*model.Game) ([]*model.Game, error) {
	raw, err := json.Marshal(games)
	if err != nil {
		return nil, fmt.Errorf("encode games: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	res, err := s.jems.Evaluate(expr, doc)
	if err != nil {
		return nil, apperrors.ValidationField("filter", "filter evaluation failed: "+err.Error())
	}
	if res == nil {
		return []*model.Game{}, nil
	}
	if _, ok := res.([]any); !ok {
		return nil, apperrors.ValidationField("filter", "filter must select a list of games")
	}
	filtered, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode filtered games: %w", err)
	}
	out := []*model.Game{}
	if err := json.Unmarshal(filtered, &out); err != nil {
		return nil, apperrors.ValidationField("filter", "filter must select a list of games")
	}
	return out, nil
}
