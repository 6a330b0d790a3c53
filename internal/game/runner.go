package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/tanks/internal/game/events"
	"github.com/mitchelldurbincs/tanks/internal/game/states"
)

// RunnerConfig bounds the driver loop
type RunnerConfig struct {
	Turns    int
	Interval time.Duration
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

func WithClock(c Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

func WithRenderer(rd Renderer) RunnerOption {
	return func(r *Runner) { r.renderer = rd }
}

func WithRunnerLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// Runner prints the field, then alternates sleeping, stepping and printing
// for a fixed number of turns.
type Runner struct {
	engine   *Engine
	out      io.Writer
	pub      events.Publisher
	turns    int
	interval atomic.Int64
	clock    Clock
	renderer Renderer
	logger   zerolog.Logger
	machine  *states.StateMachine
}

// NewRunner creates a driver for engine writing snapshots to out
func NewRunner(engine *Engine, out io.Writer, pub events.Publisher, cfg RunnerConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:   engine,
		out:      out,
		pub:      pub,
		turns:    cfg.Turns,
		clock:    RealClock{},
		renderer: PlainRenderer{},
		logger:   log.Logger,
	}
	r.interval.Store(int64(cfg.Interval))
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "runner").Logger()

	ctx := states.NewRunContext(engine.GameID(), len(engine.Field().Tanks()), r.logger)
	r.machine = states.NewStateMachine(ctx, pub)
	return r
}

// SetInterval changes the pause between turns; safe to call while Run is active
func (r *Runner) SetInterval(d time.Duration) {
	r.interval.Store(int64(d))
	r.logger.Info().Dur("interval", d).Msg("Turn interval updated")
}

func (r *Runner) Interval() time.Duration { return time.Duration(r.interval.Load()) }
func (r *Runner) Phase() states.Phase     { return r.machine.CurrentPhase() }

// Run blocks until every turn is played, ctx is cancelled, or a turn fails.
// Cancellation ends the run normally and returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	if phase := r.machine.CurrentPhase(); phase.IsTerminal() {
		return fmt.Errorf("run already finished in phase %s", phase)
	}
	if err := r.machine.TransitionTo(states.PhaseRunning, "field ready"); err != nil {
		return r.fail(err)
	}

	if err := r.print(); err != nil {
		return r.fail(err)
	}

	for i := 0; i < r.turns; i++ {
		if err := r.clock.Sleep(ctx, r.Interval()); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.finish("interrupted")
				return err
			}
			return r.fail(err)
		}
		if err := r.engine.Step(); err != nil {
			return r.fail(err)
		}
		if err := r.print(); err != nil {
			return r.fail(err)
		}
	}

	r.finish("completed")
	return nil
}

func (r *Runner) print() error {
	if _, err := fmt.Fprintln(r.out, r.engine.Render(r.renderer)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (r *Runner) finish(reason string) {
	if err := r.machine.TransitionTo(states.PhaseEnded, reason); err != nil {
		r.logger.Error().Err(err).Msg("Could not end run")
	}
	r.publishEnded(reason)
}

func (r *Runner) fail(err error) error {
	if terr := r.machine.Fail(err); terr != nil {
		r.logger.Error().Err(terr).Msg("Could not record failure")
	}
	r.publishEnded("failed")
	return err
}

func (r *Runner) publishEnded(reason string) {
	if r.pub == nil {
		return
	}
	elapsed := r.machine.GetContext().Elapsed()
	r.pub.Publish(events.NewSimulationEndedEvent(r.engine.GameID(), r.engine.Turn(), elapsed, reason))
}
