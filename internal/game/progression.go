package game

import (
	"time"

	"github.com/tomz197/spacesurvivor/internal/config"
	"github.com/tomz197/spacesurvivor/internal/object"
	"github.com/tomz197/spacesurvivor/internal/physics"
)

// start resets every mutable field, spawns the player and the first opponent,
// and starts ticking.
func (g *Game) start() bool {
	if g.status == StatusRunning {
		return false
	}

	g.stopTicking()
	g.cancelDeferred()

	g.run++
	g.score = 0
	g.opponentsDefeated = 0
	g.shots = nil
	g.opponentShots = nil

	playerX := physics.ClampX(g.width/2-object.PlayerWidth/2, object.PlayerWidth, g.width)
	g.player = object.NewPlayer(playerX, max(0, g.height-config.PlayerBottomMargin))
	g.opponent = object.NewOpponent(config.OpponentSpawnX, config.OpponentSpawnY, config.OpponentBaseSpeed)
	g.status = StatusRunning

	run := g.run
	g.stopTick = g.clock.Every(g.tickPeriod, func() {
		g.apply(func(g *Game) bool { return g.tick(run) })
	})

	g.logger.Info("run started", "run", run, "viewport", [2]float64{g.width, g.height})
	return true
}

// endGame stops the tick and records the outcome.
func (g *Game) endGame(status Status) {
	g.stopTicking()
	g.cancelDeferred()
	g.status = status
	g.logger.Info("game over", "run", g.run, "status", status, "score", g.score)
}

func (g *Game) stopTicking() {
	if g.stopTick != nil {
		g.stopTick()
		g.stopTick = nil
	}
}

// later runs action after delay, but only if the run that scheduled it is
// still the current run and still in progress.
func (g *Game) later(delay time.Duration, action command) {
	run := g.run
	g.nextDeferred++
	id := g.nextDeferred

	g.deferred[id] = g.clock.After(delay, func() {
		g.apply(func(g *Game) bool {
			delete(g.deferred, id)
			if g.run != run || g.status != StatusRunning {
				return false
			}
			return action(g)
		})
	})
}

func (g *Game) cancelDeferred() {
	for id, cancel := range g.deferred {
		cancel()
		delete(g.deferred, id)
	}
}

// opponentDefeated keeps the dead sprite on screen for a moment, then
// replaces the opponent or, for the boss, ends the game.
func (g *Game) opponentDefeated(o *object.Opponent) {
	g.score++
	g.logger.Debug("opponent defeated", "run", g.run, "kind", o.Kind, "score", g.score)

	g.later(config.OpponentRemovalDelay, func(g *Game) bool {
		return g.replaceOpponent(o)
	})
}

func (g *Game) replaceOpponent(o *object.Opponent) bool {
	if g.opponent != o {
		return false
	}

	if o.IsBoss() {
		g.endGame(StatusWin)
		return true
	}

	g.opponentsDefeated++
	if g.opponentsDefeated >= config.OpponentsBeforeBoss {
		g.opponent = object.NewBoss(config.OpponentSpawnX, config.OpponentSpawnY, config.OpponentBaseSpeed)
		g.logger.Debug("boss spawned", "run", g.run)
	} else {
		speed := config.OpponentBaseSpeed * float64(g.opponentsDefeated+1)
		g.opponent = object.NewOpponent(config.OpponentSpawnX, config.OpponentSpawnY, speed)
	}
	return true
}

// playerHit applies the outcome of a hit on the player.
func (g *Game) playerHit(result object.HitResult) {
	switch result {
	case object.HitDowned:
		p := g.player
		g.logger.Debug("player down", "run", g.run, "lives", p.Lives)
		g.later(config.RespawnDelay, func(g *Game) bool {
			return g.player == p && p.Respawn()
		})
	case object.HitKilled:
		g.endGame(StatusLose)
	}
}
