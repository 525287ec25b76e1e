package model

// GridSize is the fixed dimension of every board
const GridSize = 8

// ShipCount is the number of occupied cells placed on every board.
// Hitting all of an opponent's ship cells wins the game.
const ShipCount = 15

// Grid is a fixed 8x8 occupancy grid, row-major: Grid[row][col] with
// row = y and col = x. 1 means a ship cell, 0 means empty. The axis
// convention matches the stored data format and must not change.
type Grid [GridSize][GridSize]int

// Board holds one player's ship layout for one game. Boards are written
// once at creation and never mutated afterwards; moves only read them.
type Board struct {
	GameID   GameID
	PlayerID PlayerID
	Grid     Grid
}

// InBounds returns true if (x, y) is a valid cell coordinate
func InBounds(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// IsShipAt returns true if the cell targeted by (x, y) holds a ship
func (b *Board) IsShipAt(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	return b.Grid[y][x] == 1
}

// ShipCells returns the number of occupied cells on the board
func (b *Board) ShipCells() int {
	count := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if b.Grid[row][col] == 1 {
				count++
			}
		}
	}
	return count
}
