package chess

import "github.com/montanaflynn/stats"

// ScoreFunc values count pieces of kind. It is the seam for scoring variants
// that discount doubled pawns and the like.
type ScoreFunc func(kind Kind, count int) float64

// PlainScore is Kind.Score.
func PlainScore(kind Kind, count int) float64 {
	return kind.Score(count)
}

// Scoreboard summarises a board for display.
type Scoreboard struct {
	White    float64
	Black    float64
	Finished bool
	Winner   Color
}

// NewScoreboard scores board with PlainScore.
func NewScoreboard(board Board) Scoreboard {
	return NewScoreboardWith(board, PlainScore)
}

// NewScoreboardWith scores board with score.
func NewScoreboardWith(board Board, score ScoreFunc) Scoreboard {
	result := Scoreboard{
		White:    scoreWith(board, White, score),
		Black:    scoreWith(board, Black, score),
		Finished: board.Finished(),
	}
	if result.Finished {
		switch {
		case board.HasKing(White):
			result.Winner = White
		case board.HasKing(Black):
			result.Winner = Black
		}
	}
	return result
}

// Score is the material total of color on board.
func Score(board Board, color Color) float64 {
	return scoreWith(board, color, PlainScore)
}

func scoreWith(board Board, color Color, score ScoreFunc) float64 {
	counts := make(map[Kind]int, len(Kinds))
	for _, piece := range board.squares {
		if !piece.IsEmpty() && piece.Color == color {
			counts[piece.Kind]++
		}
	}
	values := make(stats.Float64Data, 0, len(counts))
	for _, kind := range Kinds {
		if counts[kind] > 0 {
			values = append(values, score(kind, counts[kind]))
		}
	}
	if len(values) == 0 {
		return 0
	}
	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return total
}
