package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/tanks/internal/game/core"
	"github.com/mitchelldurbincs/tanks/internal/game/events"
)

// EngineConfig describes the field and the tanks of one run
type EngineConfig struct {
	FieldSize         int
	Glyphs            []rune
	PlacementAttempts int
	RotationAttempts  int
	// Rng drives placement and rotation. A time-seeded one is used when nil.
	Rng *rand.Rand
	// Logger defaults to the global zerolog logger when nil.
	Logger *zerolog.Logger
}

type Engine struct {
	gameID string
	field  *Field
	pub    events.Publisher
	turn   int
	logger zerolog.Logger
}

// NewEngine creates the tanks at the zero position and lets the field scatter them
func NewEngine(cfg EngineConfig, pub events.Publisher) (*Engine, error) {
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if pub == nil {
		pub = events.NewEventBusWithLogger(logger)
	}

	if err := validateGlyphs(cfg.Glyphs); err != nil {
		return nil, err
	}

	tanks := make([]core.Player, 0, len(cfg.Glyphs))
	for _, glyph := range cfg.Glyphs {
		tanks = append(tanks, core.NewTank(glyph, core.ZeroPosition(), rng))
	}

	e := &Engine{
		gameID: uuid.NewString(),
		pub:    pub,
	}
	e.logger = logger.With().Str("component", "engine").Str("game_id", e.gameID).Logger()

	field, err := NewField(cfg.FieldSize, tanks, rng,
		WithPlacementAttempts(cfg.PlacementAttempts),
		WithRotationAttempts(cfg.RotationAttempts),
		WithFieldLogger(e.logger),
		WithObserver(events.NewFieldPublisher(pub, e.gameID, e.Turn)),
	)
	if err != nil {
		return nil, fmt.Errorf("build field: %w", err)
	}
	e.field = field

	refs := make([]events.TankRef, 0, len(tanks))
	for _, p := range tanks {
		refs = append(refs, events.RefOf(p))
	}
	pub.Publish(events.NewSimulationStartedEvent(e.gameID, field.Size(), refs))

	e.logger.Info().
		Int("field_size", field.Size()).
		Int("tanks", len(tanks)).
		Msg("Engine created")

	return e, nil
}

func validateGlyphs(glyphs []rune) error {
	if len(glyphs) == 0 {
		return core.ErrNoTanks
	}
	seen := make(map[rune]bool, len(glyphs))
	for _, g := range glyphs {
		if g == 0 || g == '\n' || string(g) == EmptyGlyph {
			return fmt.Errorf("%w: %q", core.ErrInvalidGlyph, g)
		}
		if seen[g] {
			return fmt.Errorf("%w: %q", core.ErrDuplicateGlyph, g)
		}
		seen[g] = true
	}
	return nil
}

// Step advances the simulation by one turn
func (e *Engine) Step() error {
	e.turn++
	e.pub.Publish(events.NewTurnStartedEvent(e.gameID, e.turn))

	start := time.Now()
	if err := e.field.Move(); err != nil {
		return core.WrapTurnError(e.turn, err)
	}

	e.pub.Publish(events.NewTurnEndedEvent(e.gameID, e.turn, len(e.field.Tanks()), time.Since(start)))
	return nil
}

// Public accessors
func (e *Engine) GameID() string { return e.gameID }
func (e *Engine) Turn() int      { return e.turn }
func (e *Engine) Field() *Field  { return e.field }

// Render draws the field with r
func (e *Engine) Render(r Renderer) string {
	return r.Render(e.field)
}
