// Package game is the simulation engine: it owns every entity, runs the
// fixed-period tick, resolves hits, drives the opponent progression and
// publishes snapshots to a renderer.
//
// All mutation goes through a single lock-guarded entry point, so ticks,
// player intents and deferred actions may arrive from any goroutine.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacesurvivor/internal/clock"
	"github.com/tomz197/spacesurvivor/internal/config"
	"github.com/tomz197/spacesurvivor/internal/object"
)

// ErrInvalidViewport is returned for viewport dimensions that are not positive.
var ErrInvalidViewport = errors.New("viewport dimensions must be positive")

// Rand is the random source deciding when opponents fire.
type Rand interface {
	Float64() float64
}

// Game is the engine. The zero value is not usable; create one with New.
type Game struct {
	mu sync.Mutex

	width  float64
	height float64

	player        *object.Player
	opponent      *object.Opponent
	shots         []*object.Shot // Player shots, oldest first
	opponentShots []*object.Shot

	score             int
	opponentsDefeated int
	status            Status
	run               uint64

	clock      clock.Clock
	tickPeriod time.Duration
	rng        Rand
	logger     *log.Logger

	stopTick     clock.Cancel
	deferred     map[uint64]clock.Cancel
	nextDeferred uint64
	seq          uint64
	listener     Listener
	destroyed    bool
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the real clock, typically with a clock.Manual in tests.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithRand sets the random source for opponent fire.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed seeds the default random source. Zero keeps a random seed.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		if seed != 0 {
			g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithTickPeriod overrides the tick period. Non-positive values are ignored.
func WithTickPeriod(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.tickPeriod = d
		}
	}
}

// New creates an engine for a viewport of the given size, in the START state.
func New(width, height float64, opts ...Option) (*Game, error) {
	if err := validViewport(width, height); err != nil {
		return nil, err
	}

	g := &Game{
		width:      width,
		height:     height,
		status:     StatusStart,
		clock:      clock.Real{},
		tickPeriod: config.TickPeriod,
		deferred:   make(map[uint64]clock.Cancel),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	return g, nil
}

func validViewport(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidViewport, width, height)
	}
	return nil
}

// command mutates the game and reports whether anything changed.
type command func(g *Game) bool

// apply is the single mutation entry point; after Destroy every command is
// dropped. A changed state is copied under the lock and handed to the
// listener after the lock is released.
func (g *Game) apply(cmd command) {
	g.mu.Lock()
	if g.destroyed || !cmd(g) || g.listener == nil {
		g.mu.Unlock()
		return
	}
	listener, snap := g.listener, g.publishable()
	g.mu.Unlock()

	listener(snap)
}

// OnStateChange registers the listener that receives a snapshot after every
// change. It is called on the goroutine that made the change, without the
// engine lock, so it may call back into the Game. Calls from concurrent
// changes can arrive out of order; Snapshot.Seq orders them.
func (g *Game) OnStateChange(fn Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return
	}
	g.listener = fn
}

// SetViewportSize resizes the playfield and pulls the player back inside it.
func (g *Game) SetViewportSize(width, height float64) error {
	if err := validViewport(width, height); err != nil {
		return err
	}
	g.apply(func(g *Game) bool {
		g.width, g.height = width, height
		g.clampPlayer()
		return true
	})
	return nil
}

// Start begins a new run. It does nothing while a run is in progress.
func (g *Game) Start() {
	g.apply((*Game).start)
}

// Destroy stops the tick, cancels deferred actions and drops the listener.
// Every later call on the Game is a no-op.
func (g *Game) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.destroyed {
		return
	}
	g.destroyed = true
	g.stopTicking()
	g.cancelDeferred()
	g.listener = nil
	g.logger.Debug("game destroyed", "run", g.run)
}

// Move steps the player one increment left or right.
func (g *Game) Move(dir Direction) {
	g.apply(func(g *Game) bool {
		if !g.canAct() {
			return false
		}
		dx := config.PlayerStep
		if dir == Left {
			dx = -dx
		}
		g.player.MoveBy(dx, g.width)
		return true
	})
}

// MoveTo centres the player on x, clamped to the viewport.
func (g *Game) MoveTo(x float64) {
	g.apply(func(g *Game) bool {
		if !g.canAct() {
			return false
		}
		g.player.MoveTo(x, g.width)
		return true
	})
}

// Shoot fires a player shot unless the in-flight cap is reached.
func (g *Game) Shoot() {
	g.apply(func(g *Game) bool {
		if !g.canAct() || len(g.shots) >= config.MaxPlayerShots {
			return false
		}
		g.shots = append(g.shots, g.player.Shoot())
		return true
	})
}

// IsRunning reports whether a run is in progress.
func (g *Game) IsRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status == StatusRunning
}

// IsGameOver reports whether the last run ended in a win or a loss.
func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status.GameOver()
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// canAct reports whether player intents are accepted.
func (g *Game) canAct() bool {
	return g.status == StatusRunning && g.player != nil && !g.player.Dead
}

func (g *Game) clampPlayer() {
	if g.player == nil {
		return
	}
	g.player.MoveBy(0, g.width)
	g.player.Y = max(0, g.height-config.PlayerBottomMargin)
}
