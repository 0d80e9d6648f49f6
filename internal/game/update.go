package game

import (
	"github.com/tomz197/spacesurvivor/internal/config"
	"github.com/tomz197/spacesurvivor/internal/object"
	"github.com/tomz197/spacesurvivor/internal/physics"
)

// tick advances the simulation by one step: opponent, shots, culling, hits.
// Ticks left over from an earlier run are ignored.
func (g *Game) tick(run uint64) bool {
	if g.run != run || g.status != StatusRunning || g.player == nil {
		return false
	}

	if g.opponent != nil {
		g.opponent.Update(g.width)
		if g.rng.Float64() < config.OpponentShootChance {
			if shot := g.opponent.Shoot(); shot != nil {
				g.opponentShots = append(g.opponentShots, shot)
			}
		}
	}

	g.shots = advanceShots(g.shots, func(s *object.Shot) bool {
		return s.AboveTop()
	})
	g.opponentShots = advanceShots(g.opponentShots, func(s *object.Shot) bool {
		return s.BelowBottom(g.height)
	})

	g.checkCollisions()
	return true
}

// advanceShots moves every shot and drops those gone reports as off screen.
// Order is preserved.
func advanceShots(shots []*object.Shot, gone func(*object.Shot) bool) []*object.Shot {
	kept := shots[:0]
	for _, s := range shots {
		s.Update()
		if !gone(s) {
			kept = append(kept, s)
		}
	}
	clear(shots[len(kept):])
	return kept
}

// checkCollisions resolves player shots against the opponent and opponent
// shots against the player. A shot is spent on its first hit.
func (g *Game) checkCollisions() {
	if g.player == nil || g.opponent == nil {
		return
	}

	g.shots = resolveHits(g.shots, g.opponent, func(result object.HitResult) {
		if result == object.HitKilled {
			g.opponentDefeated(g.opponent)
		}
	})

	g.opponentShots = resolveHits(g.opponentShots, g.player, g.playerHit)
}

// resolveHits removes every shot that strikes a live target and reports each
// hit. Once the target dies the remaining shots fly on.
func resolveHits(shots []*object.Shot, target object.Hittable, onHit func(object.HitResult)) []*object.Shot {
	kept := shots[:0]
	for _, s := range shots {
		if !target.IsDead() && physics.Overlaps(s.Bounds(), target.Bounds()) {
			onHit(target.ApplyHit())
			continue
		}
		kept = append(kept, s)
	}
	clear(shots[len(kept):])
	return kept
}
