package maze

// Neighbors4 is the fixed exploration order: +x, -x, +y, -y.
// Search results depend on it, so it must not change.
var Neighbors4 = [4]Position{
	{Col: 1, Row: 0},
	{Col: -1, Row: 0},
	{Col: 0, Row: 1},
	{Col: 0, Row: -1},
}

// Neighbors returns the walkable orthogonal neighbours of p in Neighbors4 order.
func Neighbors(w Walkable, p Position) []Position {
	out := make([]Position, 0, len(Neighbors4))
	for _, d := range Neighbors4 {
		if n := p.Add(d); w.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// NextStep returns the cell a pursuer standing on start should move to in
// order to follow a shortest path to goal. It returns start when the two
// coincide or when goal cannot be reached.
//
// The search runs from scratch on every call; callers recompute each tick so
// the pursuer reacts to a moving target immediately.
func NextStep(w Walkable, start, goal Position) Position {
	if start == goal {
		return start
	}

	parent := map[Position]Position{start: start}
	frontier := []Position{start}
	found := false

	for head := 0; head < len(frontier); head++ {
		cur := frontier[head]
		if cur == goal {
			found = true
			break
		}
		for _, d := range Neighbors4 {
			nb := cur.Add(d)
			if _, seen := parent[nb]; seen || !w.Walkable(nb) {
				continue
			}
			parent[nb] = cur
			frontier = append(frontier, nb)
		}
	}

	if !found {
		return start
	}

	path := []Position{goal}
	for cur := goal; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	reverse(path)

	if len(path) < 2 {
		return start
	}
	return path[1]
}

// Distance returns the number of steps on a shortest path from a to b, or
// -1 if b is unreachable.
func Distance(w Walkable, a, b Position) int {
	if a == b {
		return 0
	}

	dist := map[Position]int{a: 0}
	frontier := []Position{a}

	for head := 0; head < len(frontier); head++ {
		cur := frontier[head]
		for _, d := range Neighbors4 {
			nb := cur.Add(d)
			if _, seen := dist[nb]; seen || !w.Walkable(nb) {
				continue
			}
			dist[nb] = dist[cur] + 1
			if nb == b {
				return dist[nb]
			}
			frontier = append(frontier, nb)
		}
	}

	return -1
}

func reverse(ps []Position) {
	for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
		ps[i], ps[j] = ps[j], ps[i]
	}
}
