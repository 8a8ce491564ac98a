package coins

import (
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/maze"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick            uint64
	Score           int
	CoinsLeft       int
	Player          maze.Position
	Pursuer         maze.Position
	Pending         core.Action
	PlayerCooldown  int
	PursuerCooldown int
	Status          core.Status
	Paused          bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:            g.tick,
		Score:           g.score,
		CoinsLeft:       len(g.coins),
		Player:          g.player,
		Pursuer:         g.pursuer,
		Pending:         g.pending,
		PlayerCooldown:  g.playerCooldown,
		PursuerCooldown: g.pursuerCooldown,
		Status:          g.status,
		Paused:          g.paused,
	}
}
