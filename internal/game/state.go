package game

import "github.com/tomz197/spacesurvivor/internal/object"

// Status is the phase of the game.
type Status int

const (
	StatusStart   Status = iota // Title screen, nothing spawned yet
	StatusRunning               // A run is in progress
	StatusWin                   // Boss defeated
	StatusLose                  // Player out of lives
)

// String returns the status name used in logs.
func (s Status) String() string {
	switch s {
	case StatusStart:
		return "START"
	case StatusRunning:
		return "RUNNING"
	case StatusWin:
		return "GAME_OVER_WIN"
	case StatusLose:
		return "GAME_OVER_LOSE"
	default:
		return "UNKNOWN"
	}
}

// GameOver reports whether the status ends a run.
func (s Status) GameOver() bool {
	return s == StatusWin || s == StatusLose
}

// Direction is a discrete horizontal move.
type Direction int

const (
	Left Direction = iota
	Right
)

// Snapshot is an immutable copy of the game state for renderers.
// Slices are freshly allocated per snapshot and never shared with the engine.
type Snapshot struct {
	Player        *object.PlayerState   // Nil before the first run
	Opponent      *object.OpponentState // Nil before the first run
	Shots         []object.ShotState    // Player shots, oldest first
	OpponentShots []object.ShotState    // Opponent shots, oldest first

	Score             int
	Lives             int
	OpponentsDefeated int
	Run               uint64 // Increments on every Start
	Seq               uint64 // Increments on every published change
	Status            Status

	// Overlay flags
	ShowStart bool
	ShowWin   bool
	ShowLose  bool

	ViewportWidth  float64
	ViewportHeight float64
}

// Listener receives a snapshot after every state change.
type Listener func(Snapshot)

// snapshot copies the current state. Must be called with the lock held.
func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		Shots:             make([]object.ShotState, 0, len(g.shots)),
		OpponentShots:     make([]object.ShotState, 0, len(g.opponentShots)),
		Score:             g.score,
		OpponentsDefeated: g.opponentsDefeated,
		Run:               g.run,
		Seq:               g.seq,
		Status:            g.status,
		ShowStart:         g.status == StatusStart,
		ShowWin:           g.status == StatusWin,
		ShowLose:          g.status == StatusLose,
		ViewportWidth:     g.width,
		ViewportHeight:    g.height,
	}

	if g.player != nil {
		ps := g.player.State()
		s.Player = &ps
		s.Lives = ps.Lives
	}
	if g.opponent != nil {
		st := g.opponent.State()
		s.Opponent = &st
	}
	for _, shot := range g.shots {
		s.Shots = append(s.Shots, shot.State())
	}
	for _, shot := range g.opponentShots {
		s.OpponentShots = append(s.OpponentShots, shot.State())
	}

	return s
}

// publishable numbers and copies the state for the listener. Must be called
// with the lock held.
func (g *Game) publishable() Snapshot {
	g.seq++
	return g.snapshot()
}
