package game

import (
	"io"
	"strings"
)

// Observation is one player's private view of the board: 1 for own
// pieces, 2 for the opponent's, 0 for empty. Row 0 is the bottom row,
// matching the environment's storage order.
type Observation struct {
	Board [][]int8
}

// Render writes the observation with the top row first, '#' for own
// pieces, 'O' for the opponent's and a space for empty cells, columns
// space-separated, followed by a blank line. Debug aid only.
func (o Observation) Render(w io.Writer) error {
	var b strings.Builder
	for r := len(o.Board) - 1; r >= 0; r-- {
		for _, cell := range o.Board[r] {
			c := byte(' ')
			switch cell {
			case 1:
				c = '#'
			case 2:
				c = 'O'
			}
			b.WriteByte(c)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func (o Observation) String() string {
	var b strings.Builder
	o.Render(&b)
	return b.String()
}
