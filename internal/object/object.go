// Package object defines the entities on the playfield and how they react to hits.
package object

import "github.com/tomz197/spacesurvivor/internal/physics"

// Image keys understood by renderers. Resolving a key to an actual sprite is
// the renderer's job.
const (
	ImagePlayer     = "player"
	ImageOpponent   = "triangle"
	ImageBoss       = "boss"
	ImageDead       = "star"
	ImagePlayerShot = "shot_player"
	ImageEnemyShot  = "shot_enemy"
)

// Entity is a positioned rectangle with a sprite identifier.
type Entity struct {
	physics.Rect
	ImageKey string
}

// EntityState is a read-only copy of an Entity.
type EntityState struct {
	X, Y          float64
	Width, Height float64
	ImageKey      string
}

// Bounds returns the rectangle used for collision tests.
func (e *Entity) Bounds() physics.Rect {
	return e.Rect
}

// State returns a copy of the entity's fields.
func (e *Entity) State() EntityState {
	return EntityState{
		X:        e.X,
		Y:        e.Y,
		Width:    e.Width,
		Height:   e.Height,
		ImageKey: e.ImageKey,
	}
}

// Bounds returns the copied rectangle.
func (s EntityState) Bounds() physics.Rect {
	return physics.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Kind tags the character variants. The set is closed: opponents, bosses and the player.
type Kind int

const (
	KindOpponent Kind = iota
	KindBoss
	KindPlayer
)

// String returns a lower-case name for logging.
func (k Kind) String() string {
	switch k {
	case KindOpponent:
		return "opponent"
	case KindBoss:
		return "boss"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// HitResult describes what a hit did to a character.
type HitResult int

const (
	HitIgnored  HitResult = iota // Target was already dead
	HitAbsorbed                  // Boss lost health but is still alive
	HitDowned                    // Player lost a life and waits for respawn
	HitKilled                    // Target is dead for good
)

// Hittable is implemented by characters that can be struck by a shot.
type Hittable interface {
	// ApplyHit resolves one hit. Hitting a dead character changes nothing.
	ApplyHit() HitResult
	// IsDead reports whether the character currently shows its dead sprite.
	IsDead() bool
	Bounds() physics.Rect
}
