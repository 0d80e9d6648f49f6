package game

import (
	"errors"
	"testing"
	"time"

	"github.com/tomz197/spacesurvivor/internal/clock"
	"github.com/tomz197/spacesurvivor/internal/config"
	"github.com/tomz197/spacesurvivor/internal/object"
)

const tick = config.TickPeriod

// fixedRand always returns the same value. 0.99 means opponents never fire,
// 0 means they fire every tick.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func newTestGame(t *testing.T, width, height float64, r Rand) (*Game, *clock.Manual) {
	t.Helper()
	c := clock.NewManual()
	g, err := New(width, height, WithClock(c), WithRand(r))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	t.Cleanup(g.Destroy)
	return g, c
}

// hitOpponent puts a viewport-wide player shot just below the opponent so the
// next tick lands it, then runs that tick.
func hitOpponent(t *testing.T, g *Game, c *clock.Manual) {
	t.Helper()
	g.mu.Lock()
	o := g.opponent
	if o == nil {
		g.mu.Unlock()
		t.Fatal("Expected an opponent")
	}
	shot := object.NewShot(0, o.Y-object.PlayerShotSpeed, g.width, object.PlayerShotHeight, object.PlayerShotSpeed, object.ImagePlayerShot)
	g.shots = append(g.shots, shot)
	g.mu.Unlock()
	c.Advance(tick)
}

// hitPlayer does the same with an opponent shot just above the player.
func hitPlayer(t *testing.T, g *Game, c *clock.Manual) {
	t.Helper()
	g.mu.Lock()
	p := g.player
	if p == nil {
		g.mu.Unlock()
		t.Fatal("Expected a player")
	}
	shot := object.NewShot(0, p.Y-object.EnemyShotSpeed, g.width, object.EnemyShotHeight, object.EnemyShotSpeed, object.ImageEnemyShot)
	g.opponentShots = append(g.opponentShots, shot)
	g.mu.Unlock()
	c.Advance(tick)
}

func TestNew_InvalidViewport(t *testing.T) {
	for _, size := range [][2]float64{{0, 300}, {400, 0}, {-1, 300}, {400, -5}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("Expected ErrInvalidViewport for %v, got %v", size, err)
		}
	}
}

func TestNew_StartsIdle(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))

	s := g.Snapshot()
	if s.Status != StatusStart || !s.ShowStart {
		t.Errorf("Expected START with the start overlay, got %v", s.Status)
	}
	if s.Player != nil || s.Opponent != nil {
		t.Error("Expected no entities before Start")
	}
	if c.Pending() != 0 {
		t.Errorf("Expected no timers before Start, got %d", c.Pending())
	}
}

func TestStart_SpawnsEntities(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()

	s := g.Snapshot()
	if s.Status != StatusRunning || !g.IsRunning() {
		t.Fatalf("Expected RUNNING, got %v", s.Status)
	}
	if s.Run != 1 {
		t.Errorf("Expected run 1, got %d", s.Run)
	}
	if s.Player.X != 175 || s.Player.Y != 240 {
		t.Errorf("Expected player at (175, 240), got (%v, %v)", s.Player.X, s.Player.Y)
	}
	if s.Lives != object.PlayerLives {
		t.Errorf("Expected %d lives, got %d", object.PlayerLives, s.Lives)
	}
	if s.Opponent.X != 10 || s.Opponent.Y != 30 || s.Opponent.Speed != 8 {
		t.Errorf("Expected opponent at (10, 30) speed 8, got %+v", *s.Opponent)
	}
	if s.Opponent.Boss {
		t.Error("Expected the first opponent not to be a boss")
	}
	if c.Pending() != 1 {
		t.Errorf("Expected only the tick timer, got %d", c.Pending())
	}
}

func TestStart_IgnoredWhileRunning(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()
	c.Advance(3 * tick)
	g.Start()

	s := g.Snapshot()
	if s.Run != 1 {
		t.Errorf("Expected run to stay 1, got %d", s.Run)
	}
	if s.Opponent.X != 10+3*8 {
		t.Errorf("Expected the run to continue, opponent x %v", s.Opponent.X)
	}
	if c.Pending() != 1 {
		t.Errorf("Expected a single tick timer, got %d", c.Pending())
	}
}

func TestTick_OpponentMovesWithoutShooting(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()
	c.Advance(9 * tick)

	s := g.Snapshot()
	if s.Opponent.X != 82 {
		t.Errorf("Expected opponent x 82, got %v", s.Opponent.X)
	}
	if s.Opponent.Speed != 8 {
		t.Errorf("Expected direction unchanged, speed %v", s.Opponent.Speed)
	}
	if len(s.OpponentShots) != 0 {
		t.Errorf("Expected no opponent shots, got %d", len(s.OpponentShots))
	}
}

func TestTick_OpponentFires(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0))
	g.Start()
	c.Advance(tick)

	s := g.Snapshot()
	if len(s.OpponentShots) != 1 {
		t.Fatalf("Expected one opponent shot, got %d", len(s.OpponentShots))
	}
	// Fired from the opponent's new position, then moved once.
	shot := s.OpponentShots[0]
	if shot.X != 18+25-2.5 || shot.Y != 30+44+15 {
		t.Errorf("Expected shot at (40.5, 89), got (%v, %v)", shot.X, shot.Y)
	}
}

func TestTick_OpponentShotsCulledAtBottom(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()
	g.MoveTo(400)

	g.mu.Lock()
	g.opponentShots = append(g.opponentShots, object.NewShot(0, 280, 5, 10, 15, object.ImageEnemyShot))
	g.mu.Unlock()

	c.Advance(tick)
	if n := len(g.Snapshot().OpponentShots); n != 1 {
		t.Fatalf("Expected shot at y=295 to survive, got %d shots", n)
	}
	c.Advance(tick)
	if n := len(g.Snapshot().OpponentShots); n != 0 {
		t.Errorf("Expected shot at y=310 to be removed, got %d shots", n)
	}
}

func TestShoot_CapAndCulling(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()
	g.MoveTo(400) // Far right, out of the opponent's path

	for range 7 {
		g.Shoot()
	}
	s := g.Snapshot()
	if len(s.Shots) != config.MaxPlayerShots {
		t.Fatalf("Expected %d shots, got %d", config.MaxPlayerShots, len(s.Shots))
	}
	if s.Shots[0].X != 372.5 || s.Shots[0].Y != 240 {
		t.Errorf("Expected shot at (372.5, 240), got (%v, %v)", s.Shots[0].X, s.Shots[0].Y)
	}

	// y = 240 - 30n; removed once y+20 <= 0.
	c.Advance(8 * tick)
	if n := len(g.Snapshot().Shots); n != 5 {
		t.Errorf("Expected shots at y=0 to survive, got %d", n)
	}
	c.Advance(tick)
	if n := len(g.Snapshot().Shots); n != 0 {
		t.Errorf("Expected shots above the top to be removed, got %d", n)
	}

	g.Shoot()
	if n := len(g.Snapshot().Shots); n != 1 {
		t.Errorf("Expected shooting to resume after culling, got %d", n)
	}
}

func TestShoot_HitsOpponent(t *testing.T) {
	g, c := newTestGame(t, 400, 600, fixedRand(0.99))
	g.Start()
	// Player centred on 163: the shot meets the opponent at x=138 on tick 16.
	g.MoveTo(163)
	g.Shoot()

	c.Advance(15 * tick)
	if s := g.Snapshot(); s.Opponent.Dead || len(s.Shots) != 1 {
		t.Fatalf("Expected no hit before tick 16, got dead=%v shots=%d", s.Opponent.Dead, len(s.Shots))
	}

	c.Advance(tick)
	s := g.Snapshot()
	if !s.Opponent.Dead {
		t.Fatal("Expected opponent to be dead")
	}
	if s.Opponent.ImageKey != object.ImageDead {
		t.Errorf("Expected dead image, got %s", s.Opponent.ImageKey)
	}
	if s.Score != 1 {
		t.Errorf("Expected score 1, got %d", s.Score)
	}
	if len(s.Shots) != 0 {
		t.Errorf("Expected the shot to be spent, got %d", len(s.Shots))
	}
}

// twoShotsOnOpponent puts two viewport-wide player shots just below the
// opponent, so both land on the next tick.
func twoShotsOnOpponent(g *Game) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for range 2 {
		y := g.opponent.Y - object.PlayerShotSpeed
		g.shots = append(g.shots, object.NewShot(0, y, g.width, object.PlayerShotHeight, object.PlayerShotSpeed, object.ImagePlayerShot))
	}
}

func TestTick_MultipleShotsSameTick(t *testing.T) {
	t.Run("boss absorbs both", func(t *testing.T) {
		g, c := newTestGame(t, 400, 300, fixedRand(0.99))
		g.Start()
		g.mu.Lock()
		g.opponent = object.NewBoss(config.OpponentSpawnX, config.OpponentSpawnY, config.OpponentBaseSpeed)
		g.mu.Unlock()

		twoShotsOnOpponent(g)
		c.Advance(tick)

		s := g.Snapshot()
		if s.Opponent.Health != object.BossHealth-2 {
			t.Errorf("Expected boss health %d, got %d", object.BossHealth-2, s.Opponent.Health)
		}
		if s.Opponent.Dead {
			t.Error("Expected the boss to survive two hits")
		}
		if len(s.Shots) != 0 {
			t.Errorf("Expected both shots spent, got %d", len(s.Shots))
		}
		if s.Score != 0 {
			t.Errorf("Expected absorbed hits not to score, got %d", s.Score)
		}
	})

	t.Run("plain opponent dies once", func(t *testing.T) {
		g, c := newTestGame(t, 400, 300, fixedRand(0.99))
		g.Start()

		twoShotsOnOpponent(g)
		c.Advance(tick)

		s := g.Snapshot()
		if !s.Opponent.Dead {
			t.Fatal("Expected the opponent to be dead")
		}
		if s.Score != 1 {
			t.Errorf("Expected a single kill to score 1, got %d", s.Score)
		}
		if len(s.Shots) != 1 {
			t.Errorf("Expected the second shot to fly on, got %d shots", len(s.Shots))
		}
		if c.Pending() != 2 {
			t.Errorf("Expected the tick and one removal timer, got %d", c.Pending())
		}
	})
}

func TestProgression_OpponentsThenBossThenWin(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()

	hitOpponent(t, g, c)
	s := g.Snapshot()
	if !s.Opponent.Dead || s.Score != 1 {
		t.Fatalf("Expected first opponent dead with score 1, got dead=%v score=%d", s.Opponent.Dead, s.Score)
	}

	// The dead sprite stays for a second, then a faster opponent appears.
	c.Advance(config.OpponentRemovalDelay - tick)
	if !g.Snapshot().Opponent.Dead {
		t.Fatal("Expected the dead opponent to remain during the delay")
	}
	c.Advance(tick)
	s = g.Snapshot()
	if s.Opponent.Dead || s.Opponent.Boss {
		t.Fatalf("Expected a fresh opponent, got %+v", *s.Opponent)
	}
	if s.OpponentsDefeated != 1 {
		t.Errorf("Expected 1 opponent defeated, got %d", s.OpponentsDefeated)
	}
	if s.Opponent.Speed != 16 {
		t.Errorf("Expected speed 16, got %v", s.Opponent.Speed)
	}

	hitOpponent(t, g, c)
	c.Advance(config.OpponentRemovalDelay)
	s = g.Snapshot()
	if !s.Opponent.Boss || s.Opponent.Dead {
		t.Fatalf("Expected a live boss, got %+v", *s.Opponent)
	}
	if s.Opponent.Health != object.BossHealth {
		t.Errorf("Expected boss health %d, got %d", object.BossHealth, s.Opponent.Health)
	}
	if s.Opponent.Width != object.BossWidth || s.Opponent.Height != object.BossHeight {
		t.Errorf("Expected boss size %vx%v, got %vx%v", object.BossWidth, object.BossHeight, s.Opponent.Width, s.Opponent.Height)
	}

	hitOpponent(t, g, c)
	hitOpponent(t, g, c)
	s = g.Snapshot()
	if s.Opponent.Dead || s.Opponent.Health != 1 {
		t.Fatalf("Expected boss alive with 1 health, got dead=%v health=%d", s.Opponent.Dead, s.Opponent.Health)
	}
	if s.Score != 2 {
		t.Errorf("Expected absorbed hits not to score, got %d", s.Score)
	}

	hitOpponent(t, g, c)
	s = g.Snapshot()
	if !s.Opponent.Dead || s.Score != 3 {
		t.Fatalf("Expected boss dead with score 3, got dead=%v score=%d", s.Opponent.Dead, s.Score)
	}
	if s.Status != StatusRunning {
		t.Errorf("Expected the win to wait for the removal delay, got %v", s.Status)
	}

	c.Advance(config.OpponentRemovalDelay)
	s = g.Snapshot()
	if s.Status != StatusWin || !s.ShowWin {
		t.Errorf("Expected GAME_OVER_WIN, got %v", s.Status)
	}
	if !g.IsGameOver() || g.IsRunning() {
		t.Error("Expected the game to be over")
	}
	if c.Pending() != 0 {
		t.Errorf("Expected every timer stopped, got %d", c.Pending())
	}
}

func TestPlayer_HitAndRespawn(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()

	hitPlayer(t, g, c)
	s := g.Snapshot()
	if !s.Player.Dead || s.Lives != 2 {
		t.Fatalf("Expected player down with 2 lives, got dead=%v lives=%d", s.Player.Dead, s.Lives)
	}
	if len(s.OpponentShots) != 0 {
		t.Errorf("Expected the shot to be spent, got %d", len(s.OpponentShots))
	}

	// A downed player cannot act.
	x := s.Player.X
	g.Shoot()
	g.Move(Left)
	if s := g.Snapshot(); len(s.Shots) != 0 || s.Player.X != x {
		t.Error("Expected intents to be ignored while the player is down")
	}

	c.Advance(config.RespawnDelay - tick)
	if !g.Snapshot().Player.Dead {
		t.Fatal("Expected the player to stay down during the delay")
	}
	c.Advance(tick)
	s = g.Snapshot()
	if s.Player.Dead {
		t.Fatal("Expected the player to respawn")
	}
	if s.Player.ImageKey != object.ImagePlayer {
		t.Errorf("Expected the player image back, got %s", s.Player.ImageKey)
	}
	if s.Lives != 2 {
		t.Errorf("Expected 2 lives after respawn, got %d", s.Lives)
	}
}

func TestPlayer_LastLifeLoses(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()

	for range object.PlayerLives - 1 {
		hitPlayer(t, g, c)
		c.Advance(config.RespawnDelay)
	}
	if s := g.Snapshot(); s.Lives != 1 || s.Player.Dead {
		t.Fatalf("Expected one life left and alive, got lives=%d dead=%v", s.Lives, s.Player.Dead)
	}

	hitPlayer(t, g, c)
	s := g.Snapshot()
	if s.Status != StatusLose || !s.ShowLose {
		t.Fatalf("Expected GAME_OVER_LOSE, got %v", s.Status)
	}
	if !s.Player.Dead || s.Lives != 0 {
		t.Errorf("Expected a dead player with no lives, got dead=%v lives=%d", s.Player.Dead, s.Lives)
	}
	if c.Pending() != 0 {
		t.Errorf("Expected every timer stopped, got %d", c.Pending())
	}

	before := g.Snapshot()
	c.Advance(5 * time.Second)
	after := g.Snapshot()
	if !after.Player.Dead {
		t.Error("Expected the player to stay dead")
	}
	if after.Opponent.X != before.Opponent.X {
		t.Error("Expected no ticks after the game ended")
	}
}

func TestRestart_AfterGameOver(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()
	hitOpponent(t, g, c)
	for range object.PlayerLives {
		hitPlayer(t, g, c)
		c.Advance(config.RespawnDelay)
	}
	if !g.IsGameOver() {
		t.Fatal("Expected the first run to be over")
	}

	g.Start()
	s := g.Snapshot()
	if s.Status != StatusRunning || s.Run != 2 {
		t.Fatalf("Expected run 2 running, got run=%d status=%v", s.Run, s.Status)
	}
	if s.Score != 0 || s.OpponentsDefeated != 0 || s.Lives != object.PlayerLives {
		t.Errorf("Expected a reset run, got score=%d defeated=%d lives=%d", s.Score, s.OpponentsDefeated, s.Lives)
	}
	if s.Opponent.Dead || s.Opponent.X != 10 {
		t.Errorf("Expected a fresh opponent, got %+v", *s.Opponent)
	}
	if len(s.Shots) != 0 || len(s.OpponentShots) != 0 {
		t.Error("Expected no shots in a fresh run")
	}
}

// leakyClock never cancels deferred actions, so only the run tag can stop them.
type leakyClock struct {
	*clock.Manual
}

func (l leakyClock) After(d time.Duration, fn func()) clock.Cancel {
	l.Manual.After(d, fn)
	return func() {}
}

func TestDeferred_StaleRunIgnored(t *testing.T) {
	c := clock.NewManual()
	g, err := New(400, 300, WithClock(leakyClock{c}), WithRand(fixedRand(0.99)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer g.Destroy()
	g.Start()

	// A player downed in run 1 schedules a respawn...
	hitPlayer(t, g, c)
	fired := false
	g.apply(func(g *Game) bool {
		g.later(time.Second, func(g *Game) bool {
			fired = true
			return true
		})
		// ...then run 1 ends and run 2 starts before it fires.
		g.endGame(StatusLose)
		return true
	})
	g.Start()

	c.Advance(config.RespawnDelay)
	if fired {
		t.Error("Expected a deferred action from run 1 not to fire in run 2")
	}
	if s := g.Snapshot(); s.Run != 2 || s.Player.Dead {
		t.Errorf("Expected run 2 untouched, got run=%d dead=%v", s.Run, s.Player.Dead)
	}
}

func TestDeferred_StaleRemovalIgnored(t *testing.T) {
	c := clock.NewManual()
	g, err := New(400, 300, WithClock(leakyClock{c}), WithRand(fixedRand(0.99)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer g.Destroy()
	g.Start()

	hitOpponent(t, g, c)
	g.apply(func(g *Game) bool {
		g.endGame(StatusLose)
		return true
	})
	g.Start()

	c.Advance(config.OpponentRemovalDelay)
	s := g.Snapshot()
	if s.OpponentsDefeated != 0 {
		t.Errorf("Expected the old removal to be ignored, got %d defeated", s.OpponentsDefeated)
	}
	if s.Opponent.Speed != config.OpponentBaseSpeed {
		t.Errorf("Expected the run 2 opponent to stay, speed %v", s.Opponent.Speed)
	}
}

func TestIntents_IgnoredOutsideRunning(t *testing.T) {
	g, _ := newTestGame(t, 400, 300, fixedRand(0.99))
	calls := 0
	g.OnStateChange(func(Snapshot) { calls++ })

	g.Move(Left)
	g.MoveTo(100)
	g.Shoot()

	if calls != 0 {
		t.Errorf("Expected no snapshots for ignored intents, got %d", calls)
	}
	if s := g.Snapshot(); s.Player != nil || len(s.Shots) != 0 {
		t.Error("Expected nothing to change before Start")
	}
}

func TestMove_StepsAndClamps(t *testing.T) {
	g, _ := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()

	g.Move(Left)
	if x := g.Snapshot().Player.X; x != 165 {
		t.Errorf("Expected x 165, got %v", x)
	}
	g.Move(Right)
	g.Move(Right)
	if x := g.Snapshot().Player.X; x != 185 {
		t.Errorf("Expected x 185, got %v", x)
	}

	g.MoveTo(500)
	if x := g.Snapshot().Player.X; x != 350 {
		t.Errorf("Expected x clamped to 350, got %v", x)
	}
	g.Move(Right)
	if x := g.Snapshot().Player.X; x != 350 {
		t.Errorf("Expected x to stay at 350, got %v", x)
	}

	g.MoveTo(-100)
	if x := g.Snapshot().Player.X; x != 0 {
		t.Errorf("Expected x clamped to 0, got %v", x)
	}

	g.MoveTo(100)
	if x := g.Snapshot().Player.X; x != 75 {
		t.Errorf("Expected player centred on 100, got x %v", x)
	}
}

func TestSetViewportSize(t *testing.T) {
	g, _ := newTestGame(t, 400, 300, fixedRand(0.99))

	if err := g.SetViewportSize(0, 100); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Expected ErrInvalidViewport, got %v", err)
	}

	g.Start()
	if err := g.SetViewportSize(200, 500); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	s := g.Snapshot()
	if s.ViewportWidth != 200 || s.ViewportHeight != 500 {
		t.Errorf("Expected viewport 200x500, got %vx%v", s.ViewportWidth, s.ViewportHeight)
	}
	if s.Player.X != 150 || s.Player.Y != 440 {
		t.Errorf("Expected player pulled to (150, 440), got (%v, %v)", s.Player.X, s.Player.Y)
	}
}

func TestSetViewportSize_ReanchorsDownedPlayer(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	g.Start()
	hitPlayer(t, g, c)
	if !g.Snapshot().Player.Dead {
		t.Fatal("Expected the player to be down")
	}

	tests := []struct {
		width, height float64
		wantX, wantY  float64
	}{
		{200, 100, 150, 40},
		{400, 600, 150, 540},
		{100, 40, 50, 0},
	}
	for _, tt := range tests {
		if err := g.SetViewportSize(tt.width, tt.height); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		p := g.Snapshot().Player
		if p.X != tt.wantX || p.Y != tt.wantY {
			t.Errorf("%vx%v: expected player at (%v, %v), got (%v, %v)", tt.width, tt.height, tt.wantX, tt.wantY, p.X, p.Y)
		}
		if !p.Dead {
			t.Errorf("%vx%v: expected the player to stay down", tt.width, tt.height)
		}
	}
}

func TestOnStateChange_PublishesSnapshots(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	var got []Snapshot
	g.OnStateChange(func(s Snapshot) { got = append(got, s) })

	g.Start()
	c.Advance(2 * tick)

	if len(got) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(got))
	}
	if got[0].Opponent.X != 10 || got[2].Opponent.X != 26 {
		t.Errorf("Expected opponent x 10 then 26, got %v and %v", got[0].Opponent.X, got[2].Opponent.X)
	}

	// Snapshots do not alias engine state.
	g.Shoot()
	last := got[len(got)-1]
	last.Shots[0].Y = -999
	if g.Snapshot().Shots[0].Y == -999 {
		t.Error("Expected snapshot slices to be copies")
	}
}

func TestOnStateChange_ListenerMayCallBack(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	var seqs []uint64
	g.OnStateChange(func(s Snapshot) {
		seqs = append(seqs, s.Seq)
		if g.Snapshot().Seq < s.Seq {
			t.Error("Expected the engine to be at least as new as the delivered snapshot")
		}
		if s.Status == StatusRunning && len(s.Shots) == 0 {
			g.Shoot()
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Start()
		c.Advance(tick)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected the listener to call back without deadlocking")
	}

	if n := len(g.Snapshot().Shots); n != 1 {
		t.Errorf("Expected the listener's shot to be fired, got %d shots", n)
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Errorf("Expected increasing Seq, got %v", seqs)
			break
		}
	}
}

func TestDestroy_StopsEverything(t *testing.T) {
	g, c := newTestGame(t, 400, 300, fixedRand(0.99))
	calls := 0
	g.OnStateChange(func(Snapshot) { calls++ })
	g.Start()
	hitPlayer(t, g, c)

	g.Destroy()
	if c.Pending() != 0 {
		t.Errorf("Expected no timers after Destroy, got %d", c.Pending())
	}

	before := calls
	c.Advance(5 * time.Second)
	g.Start()
	g.Shoot()
	g.Destroy()
	if calls != before {
		t.Errorf("Expected no snapshots after Destroy, got %d more", calls-before)
	}
}
