package gridprompt

// Direction is a cursor movement in the grid.
type Direction int

// Movement directions understood by Move.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// Move computes the next cursor position for a directional key.
//
// Left and right wrap within the current row. Up and down wrap across rows;
// the column is clamped to the target row's last field so uneven rows stay
// addressable. Move is a pure function: it never mutates the grid and returns
// the input position unchanged when the grid cannot satisfy the movement.
func Move(grid Grid, pos Position, dir Direction) Position {
	if pos.Row < 0 || pos.Row >= len(grid) {
		return pos
	}

	switch dir {
	case Left, Right:
		rowLen := len(grid[pos.Row])
		if rowLen == 0 {
			return pos
		}
		col := pos.Col
		if dir == Right {
			col = (col + 1) % rowLen
		} else {
			col--
			if col < 0 {
				col = rowLen - 1
			}
		}
		return Position{Row: pos.Row, Col: col}

	case Up, Down:
		rowCount := len(grid)
		row := pos.Row
		if dir == Down {
			row = (row + 1) % rowCount
		} else {
			row--
			if row < 0 {
				row = rowCount - 1
			}
		}
		rowLen := len(grid[row])
		if rowLen == 0 {
			return pos
		}
		col := pos.Col
		if col > rowLen-1 {
			col = rowLen - 1
		}
		return Position{Row: row, Col: col}
	}
	return pos
}
