package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/tanks/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.SimulationStartedEvent:
		glyphs := make([]string, 0, len(e.Tanks))
		for _, tank := range e.Tanks {
			glyphs = append(glyphs, tank.Glyph)
		}
		logEvent.
			Int("field_size", e.FieldSize).
			Strs("tanks", glyphs)

	case *events.SimulationEndedEvent:
		logEvent.
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration).
			Str("reason", e.Reason)

	case *events.TurnStartedEvent:
		logEvent.Int("turn", e.TurnNumber)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("tanks_moved", e.TanksMoved).
			Dur("process_time", e.ProcessedTime)

	case *events.TankRotatedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("tank", e.Tank.Glyph).
			Str("from", e.From.String()).
			Str("to", e.To.String())

	case *events.TankMovedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("tank", e.Tank.Glyph).
			Int("from_row", e.From.Row).
			Int("from_col", e.From.Col).
			Int("to_row", e.To.Row).
			Int("to_col", e.To.Col).
			Str("direction", e.Direction.String()).
			Bool("shared_cell", e.Shared)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Simulation event")
}
