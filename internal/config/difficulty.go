package config

import "math"

// DifficultyManager turns a DifficultyConfig into concrete game parameters.
// Level grows from InitialLevel towards 1.0 as the score or tick count
// approaches Progression.MaxAt.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: unit(cfg.InitialLevel)}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// progress is how far along the progression the game is, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	if !d.IsEnabled() {
		return 0
	}
	var n int
	switch d.cfg.Progression.Type {
	case "score":
		n = score
	case "time":
		n = ticks
	default:
		return 0
	}
	return unit(float64(n) / float64(max(d.cfg.Progression.MaxAt, 1)))
}

// Level returns the difficulty in [InitialLevel, 1].
func (d *DifficultyManager) Level(score, ticks int) float64 {
	return d.floor + d.progress(score, ticks)*(1-d.floor)
}

// Interval shortens a move interval in ticks as the level rises, never
// below one tick.
func (d *DifficultyManager) Interval(base, score, ticks int) int {
	cut := math.Round(d.Level(score, ticks) * float64(d.cfg.Scaling.IntervalReduction))
	return max(1, base-int(cut))
}

// Count grows a quantity such as a mine count as the level rises.
func (d *DifficultyManager) Count(base, score, ticks int) int {
	extra := float64(base) * d.Level(score, ticks) * d.cfg.Scaling.CountMultiplier
	return base + int(math.Round(extra))
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
