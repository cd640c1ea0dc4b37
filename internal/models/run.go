package models

import "fmt"

// RunMode selects which ordered subset of the daily routine a run executes.
type RunMode string

const (
	ModeMorning      RunMode = "morning"
	ModeInsights     RunMode = "insights"
	ModeInteractions RunMode = "interactions"
	ModeFull         RunMode = "full"
)

// ParseRunMode maps a mode selector string to a RunMode.
func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(s) {
	case ModeMorning, ModeInsights, ModeInteractions, ModeFull:
		return RunMode(s), nil
	default:
		return "", fmt.Errorf("unknown run mode %q", s)
	}
}

// RunState is the orchestrator's state within one invocation.
type RunState string

const (
	StateIdle           RunState = "idle"
	StateSelectingVerse RunState = "selecting_verse"
	StateComposing      RunState = "composing"
	StatePublishing     RunState = "publishing"
	StateDone           RunState = "done"
	StateFailed         RunState = "failed"
)
