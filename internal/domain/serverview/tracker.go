package serverview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/target/serverboard/internal/domain/model"
)

// Outcome describes what happened to a resolved fetch.
type Outcome int

const (
	// OutcomeApplied means the result became the page state.
	OutcomeApplied Outcome = iota
	// OutcomeStale means a newer load was issued for the same key; the result was dropped.
	OutcomeStale
	// OutcomeClosed means the page was torn down before the result arrived.
	OutcomeClosed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	case OutcomeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrClosed is returned by Begin after Close.
var ErrClosed = errors.New("serverview: tracker closed")

// Fetcher loads one server record.
type Fetcher func(ctx context.Context, id int64) (*model.Server, error)

// TrackerOptions configures a Tracker.
type TrackerOptions struct {
	// Tokens issues request tokens shared by every tracker for the same Key.
	// Nil uses a private MemoryTokens, which only orders loads within this tracker.
	Tokens TokenSource
	Key    string
	Viewer string
	Logger *slog.Logger
}

// Tracker owns the state of one page instance across its load cycles.
type Tracker struct {
	mu     sync.Mutex
	tokens TokenSource
	key    string
	logger *slog.Logger
	state  State
	token  uint64
	// local is set when the shared TokenSource failed for the current cycle.
	local  bool
	closed bool
}

// NewTracker constructs a tracker in the loading phase.
func NewTracker(opts TrackerOptions) *Tracker {
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewMemoryTokens()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		tokens: tokens,
		key:    opts.Key,
		logger: logger,
		state:  Loading(0, opts.Viewer),
	}
}

// State returns a snapshot of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Begin moves to the loading phase for id and returns the token for this cycle.
// If the shared TokenSource fails, the cycle falls back to a local token and
// staleness is only judged against this tracker's own loads.
func (t *Tracker) Begin(ctx context.Context, id int64) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrClosed
	}
	tok, err := t.tokens.Issue(ctx, t.key)
	t.local = err != nil
	if err != nil {
		t.logger.Warn("view token unavailable, using local token", "key", t.key, "error", err)
		tok = t.token + 1
	}
	t.token = tok
	t.state = Loading(id, t.state.Viewer)
	return tok, nil
}

// Resolve applies the result of the fetch started with token.
// A nil record with a nil error counts as an empty fetch and yields PhaseAbsent.
func (t *Tracker) Resolve(ctx context.Context, token uint64, srv *model.Server, fetchErr error) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return OutcomeClosed
	}
	if token != t.token {
		return OutcomeStale
	}
	if !t.local {
		latest, err := t.tokens.Latest(ctx, t.key)
		if err != nil {
			t.logger.Warn("view token lookup failed", "key", t.key, "error", err)
		} else if latest != token {
			return OutcomeStale
		}
	}
	if fetchErr != nil || srv == nil {
		t.state = State{Phase: PhaseAbsent, ID: t.state.ID, Viewer: t.state.Viewer}
		return OutcomeApplied
	}
	t.state = Present(srv, t.state.Viewer)
	return OutcomeApplied
}

// Close tears the page down. Later results are ignored.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// Load runs one full cycle: Begin, fetch, Resolve. A ctx canceled by the time
// the fetch returns is treated as teardown. The returned error is the fetch error.
func (t *Tracker) Load(ctx context.Context, id int64, fetch Fetcher) (State, Outcome, error) {
	tok, err := t.Begin(ctx, id)
	if err != nil {
		return t.State(), OutcomeClosed, nil
	}

	srv, fetchErr := fetch(ctx, id)
	if ctx.Err() != nil {
		t.Close()
		return t.State(), OutcomeClosed, fetchErr
	}
	outcome := t.Resolve(ctx, tok, srv, fetchErr)
	return t.State(), outcome, fetchErr
}
