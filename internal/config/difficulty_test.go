package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); got < tc.want-1e-9 || got > tc.want+1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})
	if got := dm.Level(1000, 300); got != 0.5 {
		t.Errorf("Level(ticks=300) = %v, expected 0.5", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
	})
	if dm.IsEnabled() {
		t.Error("IsEnabled() = true for disabled config")
	}
	if got := dm.Level(1000, 1000); got != 0.4 {
		t.Errorf("Level() = %v, expected initial level 0.4", got)
	}
}

func TestDifficultyInterval(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{IntervalReduction: 5},
	})

	if got := dm.Interval(11, 0, 0); got != 11 {
		t.Errorf("Interval at level 0 = %d, expected 11", got)
	}
	if got := dm.Interval(11, 100, 0); got != 6 {
		t.Errorf("Interval at level 1 = %d, expected 6", got)
	}
	if got := dm.Interval(3, 100, 0); got != 1 {
		t.Errorf("Interval never drops below 1, got %d", got)
	}
}

func TestDifficultyCount(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "none"},
		Scaling:      ScalingConfig{CountMultiplier: 0.6},
	})
	// 30 + round(30 * 0.5 * 0.6) = 39
	if got := dm.Count(30, 0, 0); got != 39 {
		t.Errorf("Count(30) = %d, expected 39", got)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultCoinsConfig().Difficulty

	cfg.Apply(DifficultyHard)
	if !cfg.Enabled || cfg.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg)
	}

	cfg.Apply(DifficultyFixed)
	if cfg.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg
	cfg.Apply("")
	if cfg != before {
		t.Error("empty preset should leave the config unchanged")
	}

	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset accepted an unknown preset")
	}
}
