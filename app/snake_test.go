package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameStartsCentered(t *testing.T) {
	g := newGame(20, 10, 0)
	require.Equal(t, []point{{10, 5}, {9, 5}, {8, 5}}, g.snake)
	require.True(t, g.alive)
	require.True(t, g.attract)
	require.False(t, g.occupied(g.food))
}

func TestGameStepMovesAndWraps(t *testing.T) {
	g := newGame(20, 10, 1)
	g.food = point{0, 0}

	g.step()
	require.Equal(t, point{11, 5}, g.snake[0])
	require.Len(t, g.snake, 3)

	g.snake = []point{{19, 5}, {18, 5}, {17, 5}}
	g.step()
	require.Equal(t, point{0, 5}, g.snake[0])

	g.setDir(dirUp)
	g.snake = []point{{3, 0}, {3, 1}, {3, 2}}
	g.step()
	require.Equal(t, point{3, 9}, g.snake[0])
}

func TestGameEatGrows(t *testing.T) {
	g := newGame(20, 10, 1)
	g.food = point{11, 5}

	g.step()
	require.Equal(t, 1, g.score)
	require.Len(t, g.snake, 4)
	require.False(t, g.occupied(g.food))
}

func TestGameSelfCollision(t *testing.T) {
	g := newGame(20, 10, 1)
	g.food = point{0, 0}
	g.snake = []point{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}}
	g.headDir, g.nextDir = dirLeft, dirLeft

	g.setDir(dirDown)
	g.step()
	require.False(t, g.alive)
	require.Len(t, g.snake, 5)
}

func TestGameMovingIntoTailIsAllowed(t *testing.T) {
	g := newGame(20, 10, 1)
	g.food = point{0, 0}
	g.snake = []point{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	g.headDir, g.nextDir = dirLeft, dirLeft

	g.setDir(dirDown)
	g.step()
	require.True(t, g.alive)
	require.Equal(t, point{5, 6}, g.snake[0])
}

func TestGameIgnoresReverse(t *testing.T) {
	g := newGame(20, 10, 1)
	g.setDir(dirLeft)
	require.Equal(t, dirRight, g.nextDir)
	g.setDir(dirDown)
	require.Equal(t, dirDown, g.nextDir)
}

func TestStepIntervalClamps(t *testing.T) {
	g := newGame(20, 10, 1)
	require.Equal(t, uint64(stepIntervalBaseTicks), g.stepIntervalTicks())
	g.score = 5
	require.Equal(t, uint64(stepIntervalBaseTicks-5*stepIntervalScoreTicks), g.stepIntervalTicks())
	g.score = 1000
	require.Equal(t, uint64(stepIntervalMinTicks), g.stepIntervalTicks())
}

func TestAutopilotHeadsForFood(t *testing.T) {
	g := newGame(20, 20, 1)
	head := g.snake[0]
	g.food = point{head.x, head.y - 5}

	g.autopilot()
	require.Equal(t, dirUp, g.nextDir)
}

func TestAutopilotAvoidsBody(t *testing.T) {
	g := newGame(20, 20, 1)
	g.snake = []point{{5, 5}, {4, 5}, {4, 4}, {5, 4}, {6, 4}, {7, 4}}
	g.food = point{5, 0}

	g.autopilot()
	require.Equal(t, dirRight, g.nextDir)
}

func TestAdvanceWaitsForInterval(t *testing.T) {
	g := newGame(20, 10, 1)
	head := g.snake[0]

	require.False(t, g.advance(stepIntervalBaseTicks-1))
	require.Equal(t, head, g.snake[0])
	require.True(t, g.advance(stepIntervalBaseTicks))
	require.NotEqual(t, head, g.snake[0])

	g.paused = true
	require.False(t, g.advance(10*stepIntervalBaseTicks))
}

func TestAttractRestartsAfterDeath(t *testing.T) {
	g := newGame(20, 10, 1)
	g.alive = false
	g.diedAt = 100

	require.False(t, g.advance(100+attractRestartTicks-1))
	require.True(t, g.advance(100+attractRestartTicks))
	require.True(t, g.alive)
	require.Len(t, g.snake, 3)
}

func TestIdleFallsBackToAttract(t *testing.T) {
	g := newGame(20, 10, 1)
	g.attract = false
	g.lastInput = 500

	g.advance(500 + attractIdleTicks - 1)
	require.False(t, g.attract)
	require.True(t, g.advance(500+attractIdleTicks))
	require.True(t, g.attract)
}

func TestSpawnFoodSkipsSnake(t *testing.T) {
	g := newGame(4, 4, 7)
	g.snake = g.snake[:0]
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x != 2 || y != 3 {
				g.snake = append(g.snake, point{x, y})
			}
		}
	}
	g.spawnFood()
	require.Equal(t, point{2, 3}, g.food)
}
