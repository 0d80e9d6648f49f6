package object

// Opponent and boss dimensions.
const (
	OpponentWidth  = 50.0
	OpponentHeight = 44.0

	BossWidth  = 60.0
	BossHeight = 58.0
	BossHealth = 3
)

// Opponent is an enemy that sweeps left and right across the top of the screen.
// A boss is an Opponent tagged KindBoss: it moves twice as fast and needs
// several hits before it dies.
type Opponent struct {
	Character
	Speed  float64 // Horizontal pixels per tick, signed
	Health int     // Remaining hits; only meaningful for bosses
}

// OpponentState is a read-only copy of an Opponent. Health is zero for plain opponents.
type OpponentState struct {
	CharacterState
	Speed  float64
	Boss   bool
	Health int
}

// NewOpponent creates a plain opponent that dies in one hit.
func NewOpponent(x, y, speed float64) *Opponent {
	return &Opponent{
		Character: newCharacter(KindOpponent, x, y, OpponentWidth, OpponentHeight, ImageOpponent, ImageDead),
		Speed:     speed,
	}
}

// NewBoss creates a boss. baseSpeed is doubled.
func NewBoss(x, y, baseSpeed float64) *Opponent {
	return &Opponent{
		Character: newCharacter(KindBoss, x, y, BossWidth, BossHeight, ImageBoss, ImageDead),
		Speed:     baseSpeed * 2,
		Health:    BossHealth,
	}
}

// IsBoss reports whether the opponent is the final boss.
func (o *Opponent) IsBoss() bool {
	return o.Kind == KindBoss
}

// Update moves the opponent one tick. The direction flips once an edge is
// reached, after the move, so the opponent may overlap a wall by up to one
// tick of travel.
func (o *Opponent) Update(viewportWidth float64) {
	o.X += o.Speed
	if o.X <= 0 || o.Right() >= viewportWidth {
		o.Speed = -o.Speed
	}
}

// Shoot returns a downward shot centred under the opponent, or nil if it is dead.
func (o *Opponent) Shoot() *Shot {
	if o.Dead {
		return nil
	}
	return newShotAt(o.CenterX(), o.Bottom(), EnemyShotWidth, EnemyShotHeight, EnemyShotSpeed, ImageEnemyShot)
}

// ApplyHit resolves one hit. A plain opponent dies immediately; a boss only
// dies when its health reaches zero. Intermediate boss hits have no other effect.
func (o *Opponent) ApplyHit() HitResult {
	if o.Dead {
		return HitIgnored
	}

	switch o.Kind {
	case KindBoss:
		o.Health--
		if o.Health > 0 {
			return HitAbsorbed
		}
		o.Health = 0
	}

	o.kill()
	return HitKilled
}

// State returns a copy of the opponent's fields.
func (o *Opponent) State() OpponentState {
	return OpponentState{
		CharacterState: o.Character.State(),
		Speed:          o.Speed,
		Boss:           o.IsBoss(),
		Health:         o.Health,
	}
}

var _ Hittable = (*Opponent)(nil)
