package object

import "github.com/tomz197/spacesurvivor/internal/physics"

// Player dimensions and starting lives.
const (
	PlayerWidth  = 50.0
	PlayerHeight = 50.0
	PlayerLives  = 3
)

// Player is the ship the user controls along the bottom of the screen.
// While Dead with lives left the player is down and waiting to respawn.
type Player struct {
	Character
	Lives int
}

// PlayerState is a read-only copy of a Player.
type PlayerState struct {
	CharacterState
	Lives int
}

// NewPlayer creates a player with full lives at the given position.
func NewPlayer(x, y float64) *Player {
	return &Player{
		Character: newCharacter(KindPlayer, x, y, PlayerWidth, PlayerHeight, ImagePlayer, ImageDead),
		Lives:     PlayerLives,
	}
}

// ApplyHit costs the player one life. With lives left the player goes down
// until Respawn; on the last life it dies permanently.
func (p *Player) ApplyHit() HitResult {
	if p.Dead {
		return HitIgnored
	}

	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.kill()
		return HitKilled
	}

	p.kill()
	return HitDowned
}

// Respawn brings a downed player back. A player without lives stays dead.
func (p *Player) Respawn() bool {
	if !p.Dead || p.Lives <= 0 {
		return false
	}
	p.revive()
	return true
}

// MoveBy shifts the player horizontally, keeping it inside [0, bound].
func (p *Player) MoveBy(dx, bound float64) {
	p.X = physics.ClampX(p.X+dx, p.Width, bound)
}

// MoveTo centres the player on x, keeping it inside [0, bound].
func (p *Player) MoveTo(x, bound float64) {
	p.X = physics.ClampX(x-p.Width/2, p.Width, bound)
}

// Shoot returns an upward shot leaving the player's nose, or nil if the player is down.
func (p *Player) Shoot() *Shot {
	if p.Dead {
		return nil
	}
	return newShotAt(p.CenterX(), p.Y, PlayerShotWidth, PlayerShotHeight, PlayerShotSpeed, ImagePlayerShot)
}

// State returns a copy of the player's fields.
func (p *Player) State() PlayerState {
	return PlayerState{
		CharacterState: p.Character.State(),
		Lives:          p.Lives,
	}
}

var _ Hittable = (*Player)(nil)
