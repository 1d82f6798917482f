package main

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/maplefeline/webchess/chess"
)

// boardState stores a chess.Board as 64 piece symbols in position order, a
// slash, and the turn: "rp....PR.../0".
type boardState struct {
	chess.Board
}

func (board boardState) String() string {
	var b strings.Builder
	for _, position := range chess.Positions() {
		b.WriteString(board.Piece(position).Symbol())
	}
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(board.Turn()))
	return b.String()
}

func parseBoardState(s string) (boardState, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return boardState{}, fmt.Errorf("invalid board format %q", s)
	}
	positions := chess.Positions()
	if len(parts[0]) != len(positions) {
		return boardState{}, fmt.Errorf("board is not length %d: %d", len(positions), len(parts[0]))
	}
	turn, err := strconv.Atoi(parts[1])
	if err != nil {
		return boardState{}, fmt.Errorf("invalid turn %q: %w", parts[1], err)
	}
	pieces := make(map[chess.Position]chess.Piece, len(positions))
	for i, position := range positions {
		piece, err := chess.ParsePiece(parts[0][i : i+1])
		if err != nil {
			return boardState{}, fmt.Errorf("square %s: %w", position, err)
		}
		pieces[position] = piece
	}
	board, err := chess.NewBoard(pieces, turn)
	if err != nil {
		return boardState{}, err
	}
	return boardState{board}, nil
}

func (board boardState) MarshalText() ([]byte, error) {
	return []byte(board.String()), nil
}

func (board *boardState) UnmarshalText(text []byte) error {
	state, err := parseBoardState(string(text))
	if err != nil {
		return err
	}
	*board = state
	return nil
}

func (board boardState) Value() (driver.Value, error) {
	return board.String(), nil
}

func (board *boardState) Scan(cell interface{}) error {
	switch cell := cell.(type) {
	case string:
		return board.UnmarshalText([]byte(cell))
	case []byte:
		return board.UnmarshalText(cell)
	default:
		return fmt.Errorf("invalid format scaning %#v", cell)
	}
}
