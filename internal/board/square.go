package board

import "fmt"

// Square is an index 0..31 into the 32 playable dark squares, numbered
// row-major: row r occupies squares 4r..4r+3.
type Square uint8

const numSquares = 32

// rowCol returns the 0-indexed (row, col) of s on the full 8x8 board.
func (s Square) rowCol() (row, col int) {
	row = int(s) / 4
	idx := int(s) % 4
	if row%2 == 0 {
		col = idx*2 + 1
	} else {
		col = idx * 2
	}
	return row, col
}

// squareAt maps a full-board (row, col) back to a Square, reporting false
// if that cell isn't one of the 32 dark playable squares or is off-board.
func squareAt(row, col int) (Square, bool) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return 0, false
	}
	if row%2 == 0 {
		if col%2 == 0 {
			return 0, false
		}
		return Square(4*row + (col-1)/2), true
	}
	if col%2 == 1 {
		return 0, false
	}
	return Square(4*row + col/2), true
}

// Display returns the 1-indexed square number used by FEN and the REPL.
func (s Square) Display() int { return int(s) + 1 }

// ParseDisplaySquare converts a 1-indexed display square into a Square.
func ParseDisplaySquare(n int) (Square, error) {
	if n < 1 || n > numSquares {
		return 0, fmt.Errorf("board: square %d out of range 1..%d", n, numSquares)
	}
	return Square(n - 1), nil
}

func (s Square) String() string { return fmt.Sprintf("%d", s.Display()) }

// backRank reports whether row is the back rank a piece of color c
// promotes on (the far side from c's own starting rows).
func backRank(c Color, row int) bool {
	if c == Black {
		return row == 7
	}
	return row == 0
}
