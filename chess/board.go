package chess

import "fmt"

// Board is a snapshot of piece placement and the turn counter. It is a value:
// Move returns a new Board and never changes the receiver, so a Board may be
// shared between goroutines without locking.
type Board struct {
	squares [boardSize * boardSize]Piece
	turn    int
}

// EmptyBoard returns a board with no pieces at turn 0.
func EmptyBoard() Board {
	return Board{}
}

// InitialBoard returns the standard starting position at turn 0.
func InitialBoard() Board {
	var board Board
	for _, piece := range Pieces() {
		for _, position := range piece.InitialPositions() {
			board.squares[position.index()] = piece
		}
	}
	return board
}

// NewBoard builds a board from placed pieces. Squares missing from pieces are
// Empty.
func NewBoard(pieces map[Position]Piece, turn int) (Board, error) {
	if turn < 0 {
		return Board{}, fmt.Errorf("negative turn %d", turn)
	}
	board := Board{turn: turn}
	for position, piece := range pieces {
		if !position.valid() {
			return Board{}, fmt.Errorf("%w: %v", ErrInvalidCoordinate, position)
		}
		board.squares[position.index()] = piece
	}
	return board, nil
}

// Turn counts the moves played so far.
func (b Board) Turn() int {
	return b.turn
}

// ToMove is White on even turns and Black on odd ones.
func (b Board) ToMove() Color {
	if b.turn%2 == 0 {
		return White
	}
	return Black
}

// Piece returns the occupant of position.
func (b Board) Piece(position Position) Piece {
	if !position.valid() {
		return Empty
	}
	return b.squares[position.index()]
}

// Pieces maps every square to its occupant.
func (b Board) Pieces() map[Position]Piece {
	pieces := make(map[Position]Piece, len(positions))
	for _, position := range positions {
		pieces[position] = b.squares[position.index()]
	}
	return pieces
}

// MoveCode parses both square codes and plays the move.
func (b Board) MoveCode(source, target string) (Board, error) {
	from, err := From(source)
	if err != nil {
		return Board{}, err
	}
	to, err := From(target)
	if err != nil {
		return Board{}, err
	}
	return b.Move(from, to)
}

// Move plays source to target for the side to move.
func (b Board) Move(source, target Position) (Board, error) {
	if !source.valid() || !target.valid() {
		return Board{}, fmt.Errorf("%w: %v to %v", ErrInvalidCoordinate, source, target)
	}
	mover := b.Piece(source)
	if mover.IsEmpty() {
		return Board{}, fmt.Errorf("%w: %s is empty", ErrIllegalMove, source)
	}
	if mover.Color != b.ToMove() {
		return Board{}, fmt.Errorf("%w: %s to move", ErrIllegalMove, b.ToMove())
	}
	occupant := b.Piece(target)
	if !occupant.IsEmpty() && !occupant.IsEnemy(mover) {
		return Board{}, fmt.Errorf("%w: %s holds own %s", ErrIllegalMove, target, occupant.Kind)
	}

	path, err := b.path(mover, source, target, occupant.IsEnemy(mover))
	if err != nil {
		return Board{}, err
	}
	for _, position := range path[:len(path)-1] {
		if !b.Piece(position).IsEmpty() {
			return Board{}, fmt.Errorf("%w: %s is blocked at %s", ErrIllegalMove, target, position)
		}
	}

	next := b
	next.squares[source.index()] = Empty
	next.squares[target.index()] = mover
	next.turn++
	return next, nil
}

// path mirrors Black's move through the board centre so every strategy can
// assume White's orientation.
func (b Board) path(mover Piece, source, target Position, capture bool) ([]Position, error) {
	if mover.Color == White {
		return mover.Path(source, target, capture)
	}
	mirrored, err := mover.Path(source.Opposite(), target.Opposite(), capture)
	if err != nil {
		return nil, fmt.Errorf("%w (black %s %s to %s)", ErrIllegalPath, mover.Kind, source, target)
	}
	path := make([]Position, len(mirrored))
	for i, position := range mirrored {
		path[i] = position.Opposite()
	}
	return path, nil
}

// Destinations lists every square the piece on source may move to this turn.
func (b Board) Destinations(source Position) []Position {
	var targets []Position
	if b.Piece(source).IsEmpty() {
		return targets
	}
	for _, target := range positions {
		if _, err := b.Move(source, target); err == nil {
			targets = append(targets, target)
		}
	}
	return targets
}

// Grid projects the board into ranks 8 down to 1, each holding files a to h.
func (b Board) Grid() [][]Piece {
	grid := make([][]Piece, 0, boardSize)
	for rank := Rank8; rank >= Rank1; rank-- {
		row := make([]Piece, 0, boardSize)
		for file := FileA; file <= FileH; file++ {
			row = append(row, b.squares[Position{File: file, Rank: rank}.index()])
		}
		grid = append(grid, row)
	}
	return grid
}

// Rows is Grid rendered as piece symbols.
func (b Board) Rows() [][]string {
	grid := b.Grid()
	rows := make([][]string, len(grid))
	for i, row := range grid {
		rows[i] = make([]string, len(row))
		for j, piece := range row {
			rows[i][j] = piece.Symbol()
		}
	}
	return rows
}

// HasKing reports whether color still has its king.
func (b Board) HasKing(color Color) bool {
	king := Piece{Kind: King, Color: color}
	for _, piece := range b.squares {
		if piece == king {
			return true
		}
	}
	return false
}

// Finished reports whether a king has been captured.
// TODO: detect checkmate and stalemate once check detection exists.
func (b Board) Finished() bool {
	return !b.HasKing(White) || !b.HasKing(Black)
}
