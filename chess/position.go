package chess

import (
	"fmt"
	"strings"
)

// File is a board column, A through H.
type File int8

// Rank is a board row, 1 through 8.
type Rank int8

// Files.
const (
	FileA File = iota + 1
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Ranks.
const (
	Rank1 Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const boardSize = 8

// Position is a single square.
type Position struct {
	File File
	Rank Rank
}

var positions = func() []Position {
	list := make([]Position, 0, boardSize*boardSize)
	for file := FileA; file <= FileH; file++ {
		for rank := Rank1; rank <= Rank8; rank++ {
			list = append(list, Position{File: file, Rank: rank})
		}
	}
	return list
}()

// Positions lists all 64 squares ordered by file, then rank.
func Positions() []Position {
	list := make([]Position, len(positions))
	copy(list, positions)
	return list
}

// Of returns the square at file and rank.
func Of(file File, rank Rank) (Position, error) {
	p := Position{File: file, Rank: rank}
	if !p.valid() {
		return Position{}, fmt.Errorf("%w: file %d rank %d", ErrInvalidCoordinate, file, rank)
	}
	return p, nil
}

// From parses a square code such as "e4" or "E4".
func From(code string) (Position, error) {
	if len(code) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, code)
	}
	lower := strings.ToLower(code)
	if len(lower) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, code)
	}
	p := Position{File: File(lower[0]-'a') + FileA, Rank: Rank(lower[1]-'1') + Rank1}
	if lower[0] < 'a' || lower[1] < '1' || !p.valid() {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, code)
	}
	return p, nil
}

func mustFrom(code string) Position {
	p, err := From(code)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Position) valid() bool {
	return p.File >= FileA && p.File <= FileH && p.Rank >= Rank1 && p.Rank <= Rank8
}

// DestinationOf steps once in direction. The second result is false when the
// step leaves the board.
func (p Position) DestinationOf(direction Direction) (Position, bool) {
	if !direction.valid() {
		return Position{}, false
	}
	df, dr := direction.Delta()
	next := Position{File: p.File + File(df), Rank: p.Rank + Rank(dr)}
	if !next.valid() {
		return Position{}, false
	}
	return next, true
}

// Opposite rotates the square 180 degrees around the board centre.
func (p Position) Opposite() Position {
	return Position{File: FileH + FileA - p.File, Rank: Rank8 + Rank1 - p.Rank}
}

// HorizontalFlip mirrors the square across the line between ranks 4 and 5.
func (p Position) HorizontalFlip() Position {
	return Position{File: p.File, Rank: Rank8 + Rank1 - p.Rank}
}

// Less orders squares by file, then rank.
func (p Position) Less(other Position) bool {
	if p.File != other.File {
		return p.File < other.File
	}
	return p.Rank < other.Rank
}

func (p Position) index() int {
	return int(p.File-FileA)*boardSize + int(p.Rank-Rank1)
}

func (p Position) String() string {
	if !p.valid() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(p.File-FileA), p.Rank)
}
