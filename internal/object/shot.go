package object

// Shot sizes and velocities. Negative speed travels up the screen.
const (
	PlayerShotWidth  = 5.0
	PlayerShotHeight = 20.0
	PlayerShotSpeed  = -30.0

	EnemyShotWidth  = 5.0
	EnemyShotHeight = 10.0
	EnemyShotSpeed  = 15.0
)

// Shot is a projectile that moves at a constant vertical velocity.
type Shot struct {
	Entity
	Speed float64 // Pixels per tick, signed
}

// ShotState is a read-only copy of a Shot.
type ShotState struct {
	EntityState
	Speed float64
}

// minShotSize is the smallest shot side; entities always have an area.
const minShotSize = 1.0

// NewShot creates a shot at the given position. Sizes below one pixel are
// raised to one.
func NewShot(x, y, width, height, speed float64, imageKey string) *Shot {
	s := &Shot{Speed: speed}
	s.X, s.Y = x, y
	s.Width, s.Height = max(width, minShotSize), max(height, minShotSize)
	s.ImageKey = imageKey
	return s
}

// newShotAt centres a shot of the given width on centerX.
func newShotAt(centerX, y, width, height, speed float64, imageKey string) *Shot {
	return NewShot(centerX-width/2, y, width, height, speed, imageKey)
}

// Update moves the shot by one tick.
func (s *Shot) Update() {
	s.Y += s.Speed
}

// AboveTop reports whether the shot's bottom edge has left the top of the viewport.
func (s *Shot) AboveTop() bool {
	return s.Bottom() <= 0
}

// BelowBottom reports whether the shot's top edge has passed the viewport bottom.
func (s *Shot) BelowBottom(viewportHeight float64) bool {
	return s.Y >= viewportHeight
}

// State returns a copy of the shot's fields.
func (s *Shot) State() ShotState {
	return ShotState{
		EntityState: s.Entity.State(),
		Speed:       s.Speed,
	}
}
