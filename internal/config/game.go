package config

import "time"

// Game constants. These are fixed rules of the game, not runtime settings;
// only the tick period can be overridden from the config file.

// Engine timing
const (
	TickPeriod           = 50 * time.Millisecond
	RespawnDelay         = 2 * time.Second
	OpponentRemovalDelay = 1 * time.Second
)

// Opponents
const (
	OpponentBaseSpeed   = 8.0 // Pixels per tick
	OpponentShootChance = 0.1 // Per tick
	OpponentsBeforeBoss = 2
	OpponentSpawnX      = 10.0
	OpponentSpawnY      = 30.0
)

// Player
const (
	PlayerStep         = 10.0 // Pixels per discrete move
	PlayerBottomMargin = 60.0 // Player spawns this far above the viewport bottom
	MaxPlayerShots     = 5
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	DefaultCellWidth      = 8  // Viewport pixels per terminal column
	DefaultCellHeight     = 16 // Viewport pixels per terminal row
)

// Shutdown
const (
	ShutdownNotice = 5 * time.Second // How long SSH players see the shutdown screen
)

// Inactivity
const (
	InactivityDisconnectUser = 120 * time.Second
	InactivityWarnLead       = 30 * time.Second // Warning shown this long before the disconnect
)
