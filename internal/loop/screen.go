package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/spacesurvivor/internal/draw"
	"github.com/tomz197/spacesurvivor/internal/game"
	"github.com/tomz197/spacesurvivor/internal/object"
)

// titleArt is drawn on the start screen (figlet "small" font).
var titleArt = []string{
	` ___ ___  _   ___ ___   ___ _   _ ___ __   _____   _____  ___ `,
	`/ __| _ \/_\ / __| __| / __| | | | _ \\ \ / /_ _\ \ / / _ \| _ \`,
	`\__ \  _/ _ \ (__| _|  \__ \ |_| |   / \ V / | | \ V / (_) |   /`,
	`|___/_|/_/ \_\___|___| |___/\___/|_|_\  \_/ |___| \_/ \___/|_|_\`,
}

var controlLines = []string{
	"A D / < >  . . . .  Move",
	"1 - 0  . . . . . .  Jump",
	"SPACE  . . . . . . Shoot",
	"Q  . . . . . . . .  Quit",
}

// drawFrame draws the current snapshot and any overlay.
func (c *Client) drawFrame() error {
	snap := c.Snapshot()

	// A screen change clears the terminal so text from the previous overlay
	// does not persist.
	if c.state.transitioned(snap) {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
	}

	c.canvas.Clear()
	drawEntities(c.canvas, snap)
	c.canvas.Render(c.chunkWriter, c.palette)

	c.drawHUD(snap)
	c.drawOverlay(snap)

	return c.chunkWriter.Flush()
}

// drawEntities paints the opponent, the shots and the player, in that order,
// so the player stays visible when something overlaps it.
func drawEntities(canvas *draw.Canvas, snap game.Snapshot) {
	if snap.Opponent != nil {
		canvas.DrawSprite(snap.Opponent.ImageKey, snap.Opponent.Bounds())
	}
	for _, s := range snap.OpponentShots {
		canvas.DrawSprite(s.ImageKey, s.Bounds())
	}
	for _, s := range snap.Shots {
		canvas.DrawSprite(s.ImageKey, s.Bounds())
	}
	if snap.Player != nil {
		canvas.DrawSprite(snap.Player.ImageKey, snap.Player.Bounds())
	}
}

// drawHUD writes the status line above the playfield. It is padded to the
// full width so shrinking values leave no residue.
func (c *Client) drawHUD(snap game.Snapshot) {
	cols := c.canvas.Cols()

	left := fmt.Sprintf(" Score: %-6d Lives: %d", snap.Score, snap.Lives)
	right := stageLabel(snap) + " "
	gap := max(1, cols-len(left)-len(right))
	line := left + strings.Repeat(" ", gap) + right
	if len(line) > cols {
		line = line[:cols]
	}

	c.chunkWriter.WriteAt(1, 1-hudRows, c.overlay.HUD(line))
}

// stageLabel names the current opponent.
func stageLabel(snap game.Snapshot) string {
	switch {
	case snap.Opponent == nil:
		return ""
	case snap.Opponent.Boss:
		return fmt.Sprintf("BOSS %d/%d", snap.Opponent.Health, object.BossHealth)
	default:
		return fmt.Sprintf("Wave %d", snap.OpponentsDefeated+1)
	}
}

// drawOverlay draws the full-screen panel for the current screen, if any.
func (c *Client) drawOverlay(snap game.Snapshot) {
	var block string

	switch c.state.currentScreen(snap) {
	case screenPlay:
		return
	case screenStart:
		lines := append([]string{"~ Shoot down two raiders, then their boss ~", ""}, controlLines...)
		lines = append(lines, "", ">>  Press SPACE to Start  <<")
		block = c.overlay.Box(strings.Join(titleArt, "\n"), lines...)
	case screenWin:
		block = c.overlay.Box("YOU WIN",
			fmt.Sprintf("Score: %d", snap.Score),
			"",
			"Press SPACE to play again, Q to quit")
	case screenLose:
		block = c.overlay.Box("GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			"",
			"Press SPACE to try again, Q to quit")
	case screenInactive:
		remaining := c.idleTimeout - c.now().Sub(c.state.lastInput)
		block = c.overlay.Box("INACTIVITY WARNING",
			fmt.Sprintf("You will be disconnected in %d seconds.", max(0, int(remaining.Seconds()))),
			"",
			c.overlay.Banner("Press any key to continue"))
	case screenShutdown:
		remaining := c.shutdownNotice - c.now().Sub(c.state.shutdownAt)
		block = c.overlay.Box("SERVER SHUTTING DOWN",
			"The server is restarting for maintenance.",
			"Please reconnect in a moment.",
			"",
			fmt.Sprintf("Disconnecting in %d seconds...", max(0, int(remaining.Seconds()))+1),
			"Press Q to disconnect now")
	}

	col, row := draw.Center(block, c.canvas.Cols(), c.canvas.Rows())
	c.chunkWriter.WriteBlock(col, row, block)
}
