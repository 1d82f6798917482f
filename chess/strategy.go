package chess

import "fmt"

var knightJumps = [...][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// FindPath returns the squares a piece of kind crosses going from source to
// target, excluding source and including target. Geometry is White's: forward
// is increasing rank. capture selects the pawn's diagonal step.
func FindPath(kind Kind, source, target Position, capture bool) ([]Position, error) {
	switch kind {
	case King:
		return kingPath(source, target)
	case Queen:
		return slidePath(Queen, everyWay, source, target)
	case Rook:
		return slidePath(Rook, orthogonals, source, target)
	case Bishop:
		return slidePath(Bishop, diagonals, source, target)
	case Knight:
		return knightPath(source, target)
	case Pawn:
		return pawnPath(source, target, capture)
	default:
		return nil, fmt.Errorf("%w: no piece", ErrIllegalPath)
	}
}

func illegalPath(kind Kind, source, target Position) error {
	return fmt.Errorf("%w: %s %s to %s", ErrIllegalPath, kind, source, target)
}

func slidePath(kind Kind, directions []Direction, source, target Position) ([]Position, error) {
	for _, direction := range directions {
		path := make([]Position, 0, boardSize-1)
		position, ok := source.DestinationOf(direction)
		for ok {
			path = append(path, position)
			if position == target {
				return path, nil
			}
			position, ok = position.DestinationOf(direction)
		}
	}
	return nil, illegalPath(kind, source, target)
}

func knightPath(source, target Position) ([]Position, error) {
	for _, jump := range knightJumps {
		if target.File-source.File == File(jump[0]) && target.Rank-source.Rank == Rank(jump[1]) {
			return []Position{target}, nil
		}
	}
	return nil, illegalPath(Knight, source, target)
}

func kingPath(source, target Position) ([]Position, error) {
	for _, direction := range everyWay {
		if position, ok := source.DestinationOf(direction); ok && position == target {
			return []Position{target}, nil
		}
	}
	return nil, illegalPath(King, source, target)
}

func pawnPath(source, target Position, capture bool) ([]Position, error) {
	if capture {
		for _, direction := range []Direction{NorthEast, NorthWest} {
			if position, ok := source.DestinationOf(direction); ok && position == target {
				return []Position{target}, nil
			}
		}
		return nil, illegalPath(Pawn, source, target)
	}
	one, ok := source.DestinationOf(North)
	if !ok {
		return nil, illegalPath(Pawn, source, target)
	}
	if one == target {
		return []Position{target}, nil
	}
	if source.Rank == Rank2 {
		if two, ok := one.DestinationOf(North); ok && two == target {
			return []Position{one, target}, nil
		}
	}
	return nil, illegalPath(Pawn, source, target)
}
