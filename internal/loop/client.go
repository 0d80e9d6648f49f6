// Package loop runs one player's terminal session: it reads keys, forwards
// them to a game engine as intents, and redraws the engine's snapshots at a
// fixed frame rate.
package loop

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/spacesurvivor/internal/config"
	"github.com/tomz197/spacesurvivor/internal/draw"
	"github.com/tomz197/spacesurvivor/internal/game"
	"github.com/tomz197/spacesurvivor/internal/input"
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

// Fallback terminal size when the real one cannot be read.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// Options configures a Client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Config       *config.Config // Nil uses config.Default()
	Logger       *log.Logger    // Nil discards
	// Renderer styles the output. Nil creates a 256-colour renderer on the
	// client's writer, which suits SSH sessions where detection is unreliable.
	Renderer *lipgloss.Renderer
	// ShutdownNotice is how long the shutdown screen shows once the Run
	// context is cancelled. Zero exits at once.
	ShutdownNotice time.Duration
	GameOptions    []game.Option    // Appended after the options derived from Config
	Now            func() time.Time // Nil uses time.Now
}

// Client handles rendering and input for a single connection. Each client
// owns its own game.
type Client struct {
	game     *game.Game
	snapshot atomic.Pointer[game.Snapshot]
	state    *clientState

	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	palette     *draw.Palette
	overlay     *draw.Overlay

	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	username     string
	logger       *log.Logger
	now          func() time.Time

	idleTimeout    time.Duration
	shutdownNotice time.Duration
}

// NewClient creates a client reading keys from r and drawing to w, with a
// fresh game sized to the terminal.
func NewClient(r io.ByteReader, w io.Writer, opts Options) (*Client, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.ANSI256)
	}

	cols, rows := playfieldSize(termSizeFunc)
	canvas := draw.NewCanvas(cols, rows, float64(cfg.Display.CellWidth), float64(cfg.Display.CellHeight))
	chunkWriter := draw.NewChunkWriter(w)
	chunkWriter.SetOffset(0, hudRows)

	width, height := canvas.ViewportSize()
	gameOpts := append([]game.Option{
		game.WithLogger(logger),
		game.WithTickPeriod(cfg.Game.Tick),
		game.WithSeed(cfg.Game.Seed),
	}, opts.GameOptions...)
	g, err := game.New(width, height, gameOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	c := &Client{
		game:           g,
		state:          newClientState(now()),
		canvas:         canvas,
		chunkWriter:    chunkWriter,
		palette:        draw.NewPalette(renderer),
		overlay:        draw.NewOverlay(renderer),
		inputStream:    input.StartStream(r),
		termSizeFunc:   termSizeFunc,
		username:       opts.Username,
		logger:         logger,
		now:            now,
		idleTimeout:    cfg.SSH.IdleTimeout,
		shutdownNotice: opts.ShutdownNotice,
	}

	initial := g.Snapshot()
	c.snapshot.Store(&initial)
	g.OnStateChange(c.storeSnapshot)

	return c, nil
}

// playfieldSize returns the canvas size in cells for the current terminal.
func playfieldSize(termSizeFunc draw.TermSizeFunc) (cols, rows int) {
	cols, rows, err := termSizeFunc()
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = fallbackCols, fallbackRows
	}
	return max(1, cols), max(1, rows-hudRows)
}

// storeSnapshot keeps s unless a newer snapshot from a concurrent change
// has already been stored.
func (c *Client) storeSnapshot(s game.Snapshot) {
	for {
		cur := c.snapshot.Load()
		if cur != nil && cur.Seq > s.Seq {
			return
		}
		if c.snapshot.CompareAndSwap(cur, &s) {
			return
		}
	}
}

// Snapshot returns the latest game state the client has seen.
func (c *Client) Snapshot() game.Snapshot {
	return *c.snapshot.Load()
}

// Run starts the client loop. It blocks until the player quits, the input
// ends, the idle timeout passes, or ctx is cancelled and the shutdown notice
// has been shown. The game is destroyed on return.
func (c *Client) Run(ctx context.Context) error {
	defer c.game.Destroy()

	c.chunkWriter.HideCursor()
	c.chunkWriter.ClearScreen()
	defer func() {
		c.chunkWriter.ClearScreen()
		c.chunkWriter.ShowCursor()
		_ = c.chunkWriter.Flush()
	}()

	c.logger.Info("session started", "cols", c.canvas.Cols(), "rows", c.canvas.Rows())
	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	for c.state.running {
		if ctx.Err() != nil {
			c.beginShutdown()
		}

		c.processInput()
		c.updateScreen()

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("failed to draw frame: %w", err)
		}

		done := ctx.Done()
		if c.state.shuttingDown {
			done = nil // Already handled; wait out the notice frame by frame
		}
		select {
		case <-ticker.C:
		case <-done:
		}
	}

	c.logger.Info("session ended", "score", c.Snapshot().Score)
	return nil
}

// beginShutdown freezes the game and starts the shutdown notice.
func (c *Client) beginShutdown() {
	if c.state.shuttingDown {
		if c.now().Sub(c.state.shutdownAt) >= c.shutdownNotice {
			c.state.running = false
		}
		return
	}

	c.state.shuttingDown = true
	c.state.shutdownAt = c.now()
	c.game.Destroy()
	if c.shutdownNotice <= 0 {
		c.state.running = false
	}
}

// processInput reads pending keys, tracks inactivity and forwards intents.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)
	now := c.now()

	if in.Any() {
		c.state.lastInput = now
		c.state.isInactive = false
	} else if c.idleTimeout > 0 {
		idle := now.Sub(c.state.lastInput)
		switch {
		case idle >= c.idleTimeout:
			c.logger.Info("disconnecting idle player", "idle", idle)
			c.state.running = false
		case idle >= warnAfter(c.idleTimeout):
			c.state.isInactive = true
		}
	}

	if in.Quit {
		c.state.running = false
		return
	}
	if !c.state.shuttingDown {
		c.handleInput(in)
	}

	if c.inputStream.Closed() {
		c.state.running = false
	}
}

// warnAfter returns the idle time after which the inactivity warning shows.
func warnAfter(timeout time.Duration) time.Duration {
	return max(timeout-config.InactivityWarnLead, timeout/2)
}

// handleInput maps keys to engine intents. While a run is in progress keys
// steer and shoot; on the title and game-over screens Space or Enter starts
// a new run.
func (c *Client) handleInput(in input.Input) {
	snap := c.Snapshot()

	if snap.Status != game.StatusRunning {
		if in.Space || in.Enter {
			input.ResetKeyInput(c.inputStream)
			c.game.Start()
		}
		return
	}

	dir, steps := game.Right, in.Steps
	if steps < 0 {
		dir, steps = game.Left, -steps
	}
	for range steps {
		c.game.Move(dir)
	}

	if in.Number >= 0 {
		c.game.MoveTo(digitX(in.Number, snap.ViewportWidth))
	}
	if in.Space {
		c.game.Shoot()
	}
}

// digitX maps a number key to the centre of one tenth of the width, in
// keyboard order: 1 is the leftmost tenth and 0 the rightmost.
func digitX(digit int, width float64) float64 {
	slot := (digit + 9) % 10
	return width * (float64(slot) + 0.5) / 10
}

// updateScreen follows terminal resizes, resizing the canvas and the game's
// viewport together.
func (c *Client) updateScreen() {
	cols, rows := playfieldSize(c.termSizeFunc)
	if cols == c.canvas.Cols() && rows == c.canvas.Rows() {
		return
	}

	c.canvas.Resize(cols, rows)
	c.chunkWriter.ClearScreen()

	width, height := c.canvas.ViewportSize()
	if err := c.game.SetViewportSize(width, height); err != nil {
		c.logger.Warn("failed to resize viewport", "err", err)
		return
	}
	c.logger.Debug("terminal resized", "cols", cols, "rows", rows)
}
