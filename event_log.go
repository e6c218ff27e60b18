package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/encounter"
	"golang.design/x/clipboard"
)

const eventLogLines = 12

// eventLog keeps every event line of the run; the newest few are drawn on
// screen and the whole log can be copied to the clipboard.
type eventLog struct {
	lines         []string
	clipboardUp   bool
	clipboardInit bool
}

func (l *eventLog) listener() encounter.Listener {
	return encounter.ListenerFuncs{
		DamageDealt: func(evt ecs.Event) {
			l.addf(evt, "%s hit %s for %d (%s)", evt.Source, evt.Entity, evt.Amount, evt.Outcome)
		},
		ActorDied:        func(evt ecs.Event) { l.addf(evt, "%s died", evt.Entity) },
		PhaseEntered:     func(evt ecs.Event) { l.addf(evt, "%s entered phase %d", evt.Entity, evt.Phase) },
		AbilityUnlocked:  func(evt ecs.Event) { l.addf(evt, "unlocked %s", evt.Ability) },
		AbilityActivated: func(evt ecs.Event) { l.addf(evt, "cast %s", evt.Ability) },
		EncounterCleared: func(evt ecs.Event) { l.addf(evt, "encounter cleared, the gate is open") },
	}
}

func (l *eventLog) addf(evt ecs.Event, format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf("%7.2f  ", evt.Time)+fmt.Sprintf(format, args...))
}

func (l *eventLog) tail() string {
	from := max(0, len(l.lines)-eventLogLines)
	return strings.Join(l.lines[from:], "\n")
}

func (l *eventLog) reset() {
	l.lines = l.lines[:0]
}

// copyToClipboard writes the whole log as text. The clipboard is initialized
// on first use; on headless hosts it stays unavailable.
func (l *eventLog) copyToClipboard() error {
	if !l.clipboardInit {
		l.clipboardInit = true
		if err := clipboard.Init(); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		l.clipboardUp = true
	}
	if !l.clipboardUp {
		return fmt.Errorf("clipboard unavailable")
	}
	clipboard.Write(clipboard.FmtText, []byte(strings.Join(l.lines, "\n")))
	return nil
}
