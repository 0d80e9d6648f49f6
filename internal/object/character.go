package object

// Character is an Entity that can die. A dead character shows DeadImage.
type Character struct {
	Entity
	Kind       Kind
	Dead       bool
	AliveImage string
	DeadImage  string
}

// CharacterState is a read-only copy of a Character.
type CharacterState struct {
	EntityState
	Kind Kind
	Dead bool
}

func newCharacter(kind Kind, x, y, width, height float64, alive, dead string) Character {
	c := Character{
		Kind:       kind,
		AliveImage: alive,
		DeadImage:  dead,
	}
	c.X, c.Y = x, y
	c.Width, c.Height = width, height
	c.ImageKey = alive
	return c
}

// IsDead reports whether the character is dead.
func (c *Character) IsDead() bool {
	return c.Dead
}

// kill marks the character dead and swaps in the dead sprite.
func (c *Character) kill() {
	c.Dead = true
	c.ImageKey = c.DeadImage
}

func (c *Character) revive() {
	c.Dead = false
	c.ImageKey = c.AliveImage
}

// State returns a copy of the character's fields.
func (c *Character) State() CharacterState {
	return CharacterState{
		EntityState: c.Entity.State(),
		Kind:        c.Kind,
		Dead:        c.Dead,
	}
}
