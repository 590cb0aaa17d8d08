package engine

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/dialogue"
	"github.com/tatianab/memory-dive/internal/lexicon"
	"github.com/tatianab/memory-dive/internal/models"
	"github.com/tatianab/memory-dive/internal/progress"
	"github.com/tatianab/memory-dive/internal/random"
	"github.com/tatianab/memory-dive/internal/trigger"
)

// ErrBusy is returned when a query is submitted while another one is still
// being processed.
var ErrBusy = errors.New("engine: a query is already being processed")

// NoiseSource supplies noise lines in place of the authored table.
type NoiseSource interface {
	Line(ctx context.Context, query string) (string, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand sets the PRNG used for noise lines.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds the noise PRNG; zero draws a crypto seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithClock sets the clock used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNoiseSource replaces table noise lines with lines from src. Errors from
// src fall back to the table.
func WithNoiseSource(src NoiseSource) Option {
	return func(e *Engine) { e.noise = src }
}

// WithHistoryLimit keeps only the most recent n history entries; zero keeps
// everything.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.historyLimit = n }
}

// Engine owns one dive: the authoritative GameState plus the per-session
// dialogue counters. All mutations are serialized.
type Engine struct {
	catalog  *content.Catalog
	matcher  *lexicon.Matcher
	resolver *trigger.Resolver
	dialogue *dialogue.Matcher
	tracker  *dialogue.Tracker
	noise    NoiseSource

	logger       *zap.Logger
	rng          *rand.Rand
	seed         int64
	now          func() time.Time
	historyLimit int

	busy atomic.Bool
	// opMu serializes every state transition; mu guards reads of state.
	opMu    sync.Mutex
	mu      sync.RWMutex
	state   models.GameState
	session dialogue.Session
}

// NewEngine builds an engine over catalog.
func NewEngine(catalog *content.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:  catalog,
		resolver: trigger.NewResolver(),
		tracker:  dialogue.NewTracker(catalog.Dialogue.Sentinels),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		rng, seed, err := random.New(e.seed)
		if err != nil {
			return nil, err
		}
		e.rng, e.seed = rng, seed
	}

	matcher, err := lexicon.NewMatcher(lexicon.DefaultDictionary())
	if err != nil {
		return nil, err
	}
	e.matcher = matcher
	e.dialogue = dialogue.NewMatcher(catalog.Dialogue, e.rng)
	e.state = models.NewGameState(catalog.StartNodes...)

	e.logger.Debug("Engine ready",
		zap.Int("phrases", matcher.Len()),
		zap.Int("rules", len(e.resolver.Rules())),
		zap.Int64("seed", e.seed))
	return e, nil
}

// Close flushes the logger.
func (e *Engine) Close() {
	_ = e.logger.Sync()
}

// Seed returns the seed of the noise PRNG, or zero when a PRNG was injected.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Catalog returns the story table the engine was built with.
func (e *Engine) Catalog() *content.Catalog {
	return e.catalog
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() models.GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone()
}

// Reset starts a new dive with the same catalog.
func (e *Engine) Reset() {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.session = dialogue.Session{}
	e.publish(models.NewGameState(e.catalog.StartNodes...))
}

func (e *Engine) current() models.GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) publish(s models.GameState) {
	s = progress.Cap(s, e.historyLimit)
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// update runs fn as one serialized read-compute-publish step.
func (e *Engine) update(fn func(models.GameState) models.GameState) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.publish(fn(e.current()))
}

// Outcome describes what one submitted query did.
type Outcome struct {
	Query      string
	Valid      bool
	Flags      []string
	Resolution trigger.Resolution
	// Reply is set when the query fell through to the dialogue matcher.
	Reply *dialogue.Reply
	// Unlocked lists node and archive IDs unlocked for the first time.
	Unlocked []string
	// Response is the line the front-end should show.
	Response string
}

// Submit processes one player query. Every call that does not return ErrBusy
// appends exactly one search entry to the history, plus at most one info or
// shatter entry.
func (e *Engine) Submit(ctx context.Context, raw string) (Outcome, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer e.busy.Store(false)

	e.opMu.Lock()
	defer e.opMu.Unlock()

	next, out := e.process(ctx, e.current(), raw)
	e.publish(next)
	return out, nil
}

func (e *Engine) process(ctx context.Context, s models.GameState, raw string) (models.GameState, Outcome) {
	at := e.now()
	lower := strings.ToLower(strings.TrimSpace(raw))
	norm := lexicon.Normalize(raw)
	match := e.matcher.Match(norm)
	flags := lexicon.Extract(lower)

	s = progress.Append(s, models.HistorySearch, strings.TrimSpace(raw), at)
	res := e.resolver.Resolve(flags, match.Valid)
	out := Outcome{Query: norm, Valid: match.Valid, Flags: flags.Names(), Resolution: res}

	e.logger.Debug("Query resolved",
		zap.String("query", norm),
		zap.Bool("valid", match.Valid),
		zap.String("leftover", match.Leftover),
		zap.Strings("flags", out.Flags),
		zap.Stringer("kind", res.Kind),
		zap.String("rule", res.Rule))

	switch res.Kind {
	case trigger.Reveal:
		s.Consecutive = nil
		e.session.ConsecutiveMisses = 0
		s = e.reveal(s, res.Actions, &out, at)

	case trigger.Rejected:
		s.Consecutive = nil
		s = progress.Append(s, models.HistoryShatter, res.Refusal, at)
		out.Response = res.Refusal

	default:
		var sentinel string
		s.Consecutive, sentinel = e.tracker.Observe(s.Consecutive, norm)
		q := norm
		if sentinel != "" {
			q = sentinel
		}
		reply := e.dialogue.Resolve(q, &e.session)
		if reply.Kind == dialogue.ReplyNoise && e.noise != nil {
			if line, err := e.noise.Line(ctx, norm); err != nil {
				e.logger.Warn("Noise source failed, using table line", zap.Error(err))
			} else if line != "" {
				reply.Response = line
			}
		}
		if reply.Kind == dialogue.ReplyStrain {
			s = progress.Append(s, models.HistoryShatter, reply.Response, at)
		}
		out.Reply = &reply
		out.Response = reply.Response
	}
	return s, out
}

func (e *Engine) reveal(s models.GameState, actions []trigger.Action, out *Outcome, at time.Time) models.GameState {
	var archiveIDs, archiveTitles []string
	for _, a := range actions {
		title := e.catalog.Title(a)
		if a.Kind == trigger.RevealArchive {
			archiveIDs = append(archiveIDs, a.ID)
			archiveTitles = append(archiveTitles, title)
			continue
		}

		var first bool
		s, first = progress.UnlockNode(s, a.ID, title, at)
		if first {
			out.Unlocked = append(out.Unlocked, a.ID)
			out.Response = progress.DiscoveryLine(title)
			e.logger.Info("Node unlocked", zap.String("id", a.ID), zap.Int("stability", s.SystemStability))
		} else {
			out.Response = "Index already associated — " + title
		}
	}

	if len(archiveIDs) > 0 {
		var added []string
		s, added = progress.UnlockArchives(s, archiveIDs, archiveTitles, at)
		out.Unlocked = append(out.Unlocked, added...)
		if len(added) > 0 {
			out.Response = s.History[len(s.History)-1].Content
			e.logger.Info("Archives unlocked", zap.Strings("ids", added))
		} else {
			out.Response = "Archive already restored — " + strings.Join(archiveTitles, " / ")
		}
	}
	return s
}
