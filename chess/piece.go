package chess

import (
	"fmt"
	"strings"
)

// Kind is a piece type. None marks an empty square.
type Kind uint8

// Kinds.
const (
	None Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// Kinds lists every real piece kind.
var Kinds = []Kind{King, Queen, Rook, Bishop, Knight, Pawn}

// Color is a side. NoColor belongs to Empty.
type Color uint8

// Colors.
const (
	NoColor Color = iota
	White
	Black
)

type kindInfo struct {
	name    string
	symbol  string
	value   float64
	initial []Position
}

var kinds = [...]kindInfo{
	None:   {name: "none", symbol: "."},
	King:   {name: "king", symbol: "k", value: 0, initial: []Position{mustFrom("e1")}},
	Queen:  {name: "queen", symbol: "q", value: 9, initial: []Position{mustFrom("d1")}},
	Rook:   {name: "rook", symbol: "r", value: 5, initial: []Position{mustFrom("a1"), mustFrom("h1")}},
	Bishop: {name: "bishop", symbol: "b", value: 3, initial: []Position{mustFrom("c1"), mustFrom("f1")}},
	Knight: {name: "knight", symbol: "n", value: 2.5, initial: []Position{mustFrom("b1"), mustFrom("g1")}},
	Pawn: {name: "pawn", symbol: "p", value: 1, initial: []Position{
		mustFrom("a2"), mustFrom("b2"), mustFrom("c2"), mustFrom("d2"),
		mustFrom("e2"), mustFrom("f2"), mustFrom("g2"), mustFrom("h2"),
	}},
}

func (k Kind) info() kindInfo {
	if int(k) >= len(kinds) {
		return kinds[None]
	}
	return kinds[k]
}

// Value is the base material value of one piece.
func (k Kind) Value() float64 {
	return k.info().value
}

// Score is the material value of count pieces of this kind.
func (k Kind) Score(count int) float64 {
	return k.info().value * float64(count)
}

func (k Kind) String() string {
	return k.info().name
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Piece piece.
type Piece struct {
	Kind  Kind
	Color Color
}

// Empty occupies unoccupied squares.
var Empty = Piece{}

// Pieces returns the twelve colored pieces.
func Pieces() []Piece {
	list := make([]Piece, 0, 2*len(Kinds))
	for _, color := range []Color{White, Black} {
		for _, kind := range Kinds {
			list = append(list, Piece{Kind: kind, Color: color})
		}
	}
	return list
}

// IsEmpty reports whether p is the Empty marker.
func (p Piece) IsEmpty() bool {
	return p.Kind == None
}

// IsEnemy reports whether both pieces are real and on opposite sides.
func (p Piece) IsEnemy(other Piece) bool {
	return !p.IsEmpty() && !other.IsEmpty() && p.Color != other.Color
}

// Symbol is lower case for White and upper case for Black.
func (p Piece) Symbol() string {
	symbol := p.Kind.info().symbol
	if p.Color == Black {
		return strings.ToUpper(symbol)
	}
	return symbol
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// InitialPositions returns the squares p starts on. Black's are White's
// flipped across the board.
func (p Piece) InitialPositions() []Position {
	initial := p.Kind.info().initial
	list := make([]Position, 0, len(initial))
	for _, position := range initial {
		if p.Color == Black {
			position = position.HorizontalFlip()
		}
		list = append(list, position)
	}
	return list
}

// Path returns the White-oriented path of p's kind from source to target.
func (p Piece) Path(source, target Position, capture bool) ([]Position, error) {
	return FindPath(p.Kind, source, target, capture)
}

// ParsePiece is the inverse of Symbol.
func ParsePiece(symbol string) (Piece, error) {
	if symbol == kinds[None].symbol {
		return Empty, nil
	}
	lower := strings.ToLower(symbol)
	color := White
	if lower != symbol {
		color = Black
	}
	for _, kind := range Kinds {
		if kinds[kind].symbol == lower {
			return Piece{Kind: kind, Color: color}, nil
		}
	}
	return Empty, fmt.Errorf("unknown piece symbol %q", symbol)
}
