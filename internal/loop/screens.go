package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/skyfighter/internal/draw"
	"github.com/tomz197/skyfighter/internal/game"
	"github.com/tomz197/skyfighter/internal/tuning"
)

var (
	titleColor  = draw.Hex("#4ecdc4")
	accentColor = draw.Hex("#ffd700")
	dangerColor = draw.Hex("#ff6b6b")
)

// titleArt is figlet "small".
var titleArt = []string{
	` ___ _  ____   __ ___ ___ ___ _  _ _____ ___ ___ `,
	`/ __| |/ /\ \ / /| __|_ _/ __| || |_   _| __| _ \`,
	`\__ \ ' <  \ V / | _| | | (_ | __ | | | | _||   /`,
	`|___/_|\_\  |_|  |_| |___\___|_||_| |_| |___|_|_\`,
}

func levelTitle(n int, name string) string {
	return fmt.Sprintf("LEVEL %d: %s", n, strings.ToUpper(name))
}

func waveTitle(n int) string {
	return fmt.Sprintf("WAVE %d", n)
}

// text writes s at (col, row) and marks the covered cells for repaint.
func (r *Runner) text(col, row int, s string) {
	r.cw.WriteAt(col, row, s)
	r.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// colorText is text in a color.
func (r *Runner) colorText(col, row int, c draw.Color, s string) {
	r.cw.WriteColorAt(col, row, c, s)
	r.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s centered on the render area at row.
func (r *Runner) centered(row int, s string) {
	r.text(r.centerCol(s), row, s)
}

func (r *Runner) centeredColor(row int, c draw.Color, s string) {
	r.colorText(r.centerCol(s), row, c, s)
}

func (r *Runner) centerCol(s string) int {
	return max(r.canvas.TerminalWidth()/2-utf8.RuneCountInString(s)/2, 1)
}

// blink is true during the visible half of a blinking prompt.
func blink() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawUI draws the HUD and the screen for the current state on top of the canvas.
func (r *Runner) drawUI(snap *game.Snapshot) {
	mid := r.canvas.TerminalHeight() / 2

	switch {
	case r.overlay == overlayShutdown:
		r.drawShutdownScreen(mid)
		return
	case r.inactive:
		r.drawInactivityScreen(mid)
		return
	case r.overlay == overlayLeaderboard:
		r.drawLeaderboardScreen(mid)
		return
	}

	switch snap.State {
	case game.StateStart:
		r.drawStartScreen(mid)
	case game.StatePlaying:
		r.drawHUD(snap.HUD)
		if r.bannerLeft > 0 {
			for i, line := range r.banner {
				r.centeredColor(mid-4+i*2, accentColor, line)
			}
		}
	case game.StatePaused:
		r.drawHUD(snap.HUD)
		r.centeredColor(mid-1, accentColor, "P A U S E D")
		r.centered(mid+1, "P or ENTER to resume, ESC to restart")
	case game.StateLevelComplete:
		r.drawHUD(snap.HUD)
		r.drawLevelCompleteScreen(snap.HUD, mid)
	case game.StateGameOver:
		r.drawGameEndScreen(snap.HUD, mid, "G A M E   O V E R", dangerColor)
	case game.StateGameComplete:
		r.drawGameEndScreen(snap.HUD, mid, "V I C T O R Y", accentColor)
	}
}

// drawHUD draws the status lines. Fields are padded so shrinking values
// overwrite the previous frame.
func (r *Runner) drawHUD(h game.HUD) {
	width := r.canvas.TerminalWidth()
	height := r.canvas.TerminalHeight()

	r.text(2, 1, fmt.Sprintf("Score: %-8d", h.Score))
	lvl := fmt.Sprintf("Level %d: %s", h.Level, h.LevelName)
	r.text(max(width/2-len(lvl)/2, 1), 1, lvl)
	lives := fmt.Sprintf("Lives: %-2d", h.Lives)
	r.text(max(width-len(lives)-1, 1), 1, lives)

	r.text(2, height, healthBar(h.Health, h.MaxHealth, 20))
	status := fmt.Sprintf("Power: %-2d Kills: %-4d", h.PowerLevel, h.Kills)
	if h.Wave > 0 {
		status = fmt.Sprintf("Wave: %-2d %s", h.Wave, status)
	}
	r.text(max(width-len(status)-1, 1), height, status)
}

// healthBar renders "HP [#####-----]" with width cells.
func healthBar(hp, maxHP, width int) string {
	filled := 0
	if maxHP > 0 {
		filled = min(max(hp*width/maxHP, 0), width)
	}
	return fmt.Sprintf("HP [%s%s] %3d", strings.Repeat("#", filled), strings.Repeat("-", width-filled), max(hp, 0))
}

func (r *Runner) drawStartScreen(mid int) {
	top := mid - 8
	for i, line := range titleArt {
		r.centeredColor(top+i, titleColor, line)
	}
	r.centered(top+len(titleArt)+1, "~ Ten levels of aerial combat ~")

	controls := []string{
		"W A S D / Arrows  . .  Move",
		"Fire is automatic  . . . . ",
		"SPACE / X  . . .  Special  ",
		"P  . . . . . . . .  Pause  ",
		"B / TAB  . . .  High scores",
		"Q  . . . . . . . . .  Quit ",
	}
	row := top + len(titleArt) + 3
	r.centered(row, "Controls")
	for i, line := range controls {
		r.centered(row+1+i, line)
	}
	if blink() {
		r.centeredColor(row+len(controls)+2, accentColor, ">>  Press ENTER to Start  <<")
	}
}

func (r *Runner) drawLevelCompleteScreen(h game.HUD, mid int) {
	r.centeredColor(mid-3, accentColor, fmt.Sprintf("LEVEL %d COMPLETE", h.Level))
	r.centered(mid-1, fmt.Sprintf("Score: %d   Kills: %d   Time: %s", h.Score, h.Kills, h.Elapsed.Round(time.Second)))
	if blink() {
		r.centered(mid+2, fmt.Sprintf(">>  Press ENTER for level %d  <<", h.Level+1))
	}
}

func (r *Runner) drawGameEndScreen(h game.HUD, mid int, title string, c draw.Color) {
	r.centeredColor(mid-5, c, title)
	r.centered(mid-3, fmt.Sprintf("Final score: %d", h.Score))
	r.centered(mid-2, fmt.Sprintf("Level reached: %d", h.Level))

	if r.reporter != nil {
		if res, ok := r.reporter.Last(); ok {
			if res.HighScore {
				r.centeredColor(mid, accentColor, fmt.Sprintf("NEW HIGH SCORE!  Rank #%d", res.Rank))
			} else {
				r.centered(mid, "No high score this time")
			}
		}
	}
	if blink() {
		r.centered(mid+3, ">>  Press ENTER to play again  <<")
	}
	r.centered(mid+5, "Q to quit")
}

func (r *Runner) drawLeaderboardScreen(mid int) {
	top := mid - tuning.LeaderboardSize/2 - 3
	r.centeredColor(top, accentColor, "H I G H   S C O R E S")

	if len(r.entries) == 0 {
		r.centered(top+3, "No scores yet. Be the first!")
	}
	for i, e := range r.entries {
		line := fmt.Sprintf("%2d. %-16s %8d   lvl %2d   %s", i+1, e.Name, e.Score, e.Level, e.CreatedAt.Format("2006-01-02"))
		r.centered(top+2+i, line)
	}
	r.centered(top+len(r.entries)+4, "Press ENTER to go back")
}

func (r *Runner) drawInactivityScreen(mid int) {
	left := tuning.InactivityDisconnectUser - int(time.Since(r.lastInput).Seconds())
	r.centeredColor(mid-2, dangerColor, "INACTIVITY WARNING")
	r.centered(mid, fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", max(left, 0)))
	r.centered(mid+2, "Press any key to continue")
}

func (r *Runner) drawShutdownScreen(mid int) {
	r.centeredColor(mid-3, dangerColor, "SERVER SHUTTING DOWN")
	r.centered(mid-1, "The server is restarting for maintenance.")
	r.centered(mid, "Please reconnect in a moment.")
	r.centered(mid+2, fmt.Sprintf("Disconnecting in %d seconds...", int(r.shutdownLeft.Seconds())+1))
	r.centered(mid+4, "Press Q to disconnect now")
}
