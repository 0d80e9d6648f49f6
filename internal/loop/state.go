package loop

import (
	"time"

	"github.com/tomz197/spacesurvivor/internal/game"
)

// clientState holds the per-connection UI state. The game state itself lives
// in the engine and reaches the client as snapshots.
type clientState struct {
	running    bool
	lastInput  time.Time
	isInactive bool

	shuttingDown bool
	shutdownAt   time.Time

	// Previous frame, to detect screen transitions that need a full clear.
	prevStatus  game.Status
	wasInactive bool
	wasShutdown bool
	drawnBefore bool
}

func newClientState(now time.Time) *clientState {
	return &clientState{
		running:   true,
		lastInput: now,
	}
}

// screen identifies which full-screen overlay, if any, is showing.
type screen int

const (
	screenPlay screen = iota
	screenStart
	screenWin
	screenLose
	screenInactive
	screenShutdown
)

// currentScreen picks the overlay for a snapshot. Shutdown and inactivity
// notices take priority over the game's own screens.
func (s *clientState) currentScreen(snap game.Snapshot) screen {
	switch {
	case s.shuttingDown:
		return screenShutdown
	case s.isInactive:
		return screenInactive
	case snap.ShowStart:
		return screenStart
	case snap.ShowWin:
		return screenWin
	case snap.ShowLose:
		return screenLose
	default:
		return screenPlay
	}
}

// transitioned reports whether the screen changed since the last frame and
// records the current one.
func (s *clientState) transitioned(snap game.Snapshot) bool {
	changed := !s.drawnBefore ||
		snap.Status != s.prevStatus ||
		s.isInactive != s.wasInactive ||
		s.shuttingDown != s.wasShutdown

	s.drawnBefore = true
	s.prevStatus = snap.Status
	s.wasInactive = s.isInactive
	s.wasShutdown = s.shuttingDown
	return changed
}
