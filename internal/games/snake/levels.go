package snake

import "github.com/vovakirdan/grid-arcade/internal/maze"

// Level is one campaign stage. Layouts use '#' for walls and 'S' for the
// snake's head at spawn; the body trails two cells to the left.
type Level struct {
	Name           string
	TargetFood     int
	MoveEveryTicks int
	Layout         []string
}

var levels = []Level{
	{
		Name:           "Open Field",
		TargetFood:     5,
		MoveEveryTicks: 7,
		Layout: []string{
			"########################################",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#.......S..............................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"########################################",
		},
	},
	{
		Name:           "Pillars",
		TargetFood:     8,
		MoveEveryTicks: 6,
		Layout: []string{
			"########################################",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#.........##.................##........#",
			"#.........##.................##........#",
			"#......................................#",
			"#......................................#",
			"#.......S..............................#",
			"#......................................#",
			"#......................................#",
			"#.........##.................##........#",
			"#.........##.................##........#",
			"#......................................#",
			"#......................................#",
			"########################################",
		},
	},
	{
		Name:           "Divide",
		TargetFood:     10,
		MoveEveryTicks: 6,
		Layout: []string{
			"########################################",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#.....#############..#############.....#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#.......S..............................#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"########################################",
		},
	},
	{
		Name:           "Courtyard",
		TargetFood:     12,
		MoveEveryTicks: 5,
		Layout: []string{
			"########################################",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"#...........#######..#######...........#",
			"#...........#..............#...........#",
			"#...........#..............#...........#",
			"#......................................#",
			"#.....S................................#",
			"#...........#..............#...........#",
			"#...........#..............#...........#",
			"#...........#######..#######...........#",
			"#......................................#",
			"#......................................#",
			"#......................................#",
			"########################################",
		},
	},
	{
		Name:           "Switchback",
		TargetFood:     15,
		MoveEveryTicks: 5,
		Layout: []string{
			"########################################",
			"#.......#...........#...........#......#",
			"#.......#...........#...........#......#",
			"#.......#...........#...........#......#",
			"#.......#...........#...........#......#",
			"#.......#.....#.....#.....#.....#......#",
			"#.......#.....#.....#.....#.....#......#",
			"#.......#.....#.....#.....#.....#......#",
			"#.......#.....#.....#.....#.....#......#",
			"#.......#.....#.....#.....#.....#......#",
			"#.......#.....#.....#.....#.....#......#",
			"#.............#...........#............#",
			"#...S.........#...........#............#",
			"#.............#...........#............#",
			"#.............#...........#............#",
			"########################################",
		},
	},
}

var grids = func() []*maze.Grid {
	out := make([]*maze.Grid, len(levels))
	for i, l := range levels {
		out[i] = maze.MustParse(l.Layout)
	}
	return out
}()

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(levels)
}

// GetLevel returns level i (0-indexed), or nil if out of range.
func GetLevel(i int) *Level {
	if i < 0 || i >= len(levels) {
		return nil
	}
	return &levels[i]
}

func levelGrid(i int) *maze.Grid {
	return grids[i]
}
