package app

type dir uint8

const (
	dirUp dir = iota
	dirRight
	dirDown
	dirLeft
)

func (d dir) opposite() dir { return (d + 2) % 4 }

type point struct {
	x int
	y int
}

func (p point) move(d dir) point {
	switch d {
	case dirUp:
		p.y--
	case dirDown:
		p.y++
	case dirLeft:
		p.x--
	case dirRight:
		p.x++
	}
	return p
}

// Step intervals in ticks (milliseconds). The game speeds up by
// stepIntervalScoreTicks per point down to stepIntervalMinTicks.
const (
	stepIntervalBaseTicks  = 200
	stepIntervalMinTicks   = 70
	stepIntervalScoreTicks = 8

	// Attract mode restarts this long after the snake dies.
	attractRestartTicks = 1500
	// Without input for this long the game falls back to attract mode.
	attractIdleTicks = 30000
)

// game is the playfield state. It knows nothing about rendering.
type game struct {
	gridW int
	gridH int

	snake   []point
	headDir dir
	nextDir dir

	food point
	seed uint32
	rng  uint32

	score  int
	alive  bool
	paused bool

	// attract steers the snake automatically until a player presses a key.
	attract bool

	lastStep  uint64
	lastInput uint64
	diedAt    uint64
}

func newGame(gridW, gridH int, seed uint32) *game {
	if seed == 0 {
		seed = 0x12345678
	}
	g := &game{gridW: gridW, gridH: gridH, seed: seed, attract: true}
	g.reset()
	return g
}

func (g *game) reset() {
	start := point{x: g.gridW / 2, y: g.gridH / 2}
	g.snake = []point{
		start,
		{x: start.x - 1, y: start.y},
		{x: start.x - 2, y: start.y},
	}
	g.headDir = dirRight
	g.nextDir = dirRight
	g.score = 0
	g.alive = true
	g.paused = false
	g.rng = g.seed
	g.spawnFood()
}

func (g *game) stepIntervalTicks() uint64 {
	interval := stepIntervalBaseTicks - g.score*stepIntervalScoreTicks
	if interval < stepIntervalMinTicks {
		interval = stepIntervalMinTicks
	}
	return uint64(interval)
}

// advance moves the game to tick now. It reports whether anything visible
// changed.
func (g *game) advance(now uint64) bool {
	if g.attract && !g.alive && now-g.diedAt >= attractRestartTicks {
		g.reset()
		g.lastStep = now
		return true
	}
	if !g.attract && now-g.lastInput >= attractIdleTicks {
		g.attract = true
		g.reset()
		g.lastStep = now
		return true
	}
	if g.paused || !g.alive {
		return false
	}
	if now-g.lastStep < g.stepIntervalTicks() {
		return false
	}
	g.lastStep = now
	if g.attract {
		g.autopilot()
	}
	g.step()
	if !g.alive {
		g.diedAt = now
	}
	return true
}

// setDir queues a turn. Reversing onto the body is ignored.
func (g *game) setDir(d dir) {
	if !g.alive || d == g.headDir.opposite() {
		return
	}
	g.nextDir = d
}

func (g *game) wrap(p point) point {
	for p.x < 0 {
		p.x += g.gridW
	}
	for p.x >= g.gridW {
		p.x -= g.gridW
	}
	for p.y < 0 {
		p.y += g.gridH
	}
	for p.y >= g.gridH {
		p.y -= g.gridH
	}
	return p
}

func (g *game) step() {
	if !g.alive || len(g.snake) == 0 {
		return
	}

	g.headDir = g.nextDir
	next := g.wrap(g.snake[0].move(g.headDir))

	willEat := next == g.food
	if g.blocked(next, willEat) {
		g.alive = false
		return
	}

	g.snake = append([]point{next}, g.snake...)
	if willEat {
		g.score++
		g.spawnFood()
		return
	}
	g.snake = g.snake[:len(g.snake)-1]
}

// blocked reports whether the head may not move to p. The tail cell is free
// unless the snake is about to grow.
func (g *game) blocked(p point, growing bool) bool {
	check := g.snake
	if !growing && len(check) > 1 {
		check = check[:len(check)-1]
	}
	for _, s := range check {
		if s == p {
			return true
		}
	}
	return false
}

// autopilot picks the free direction that brings the head closest to the
// food.
func (g *game) autopilot() {
	head := g.snake[0]
	best, bestDist := g.headDir, -1
	// The current heading comes first so ties keep going straight.
	for _, d := range [5]dir{g.headDir, dirUp, dirRight, dirDown, dirLeft} {
		if d == g.headDir.opposite() {
			continue
		}
		next := g.wrap(head.move(d))
		if g.blocked(next, next == g.food) {
			continue
		}
		if dist := g.distance(next, g.food); bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	g.nextDir = best
}

// distance is the Manhattan distance on the wrapping playfield.
func (g *game) distance(a, b point) int {
	dx := abs(a.x - b.x)
	if w := g.gridW - dx; w < dx {
		dx = w
	}
	dy := abs(a.y - b.y)
	if h := g.gridH - dy; h < dy {
		dy = h
	}
	return dx + dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (g *game) spawnFood() {
	for tries := 0; tries < 1024; tries++ {
		g.rng = xorshift32(g.rng)
		x := int(g.rng % uint32(g.gridW))
		g.rng = xorshift32(g.rng)
		y := int(g.rng % uint32(g.gridH))
		p := point{x: x, y: y}
		if !g.occupied(p) {
			g.food = p
			return
		}
	}
	for y := 0; y < g.gridH; y++ {
		for x := 0; x < g.gridW; x++ {
			if p := (point{x: x, y: y}); !g.occupied(p) {
				g.food = p
				return
			}
		}
	}
}

func (g *game) occupied(p point) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

func xorshift32(x uint32) uint32 {
	if x == 0 {
		x = 0x6d2b79f5
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}
