package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/apex/log"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"github.com/maplefeline/webchess/chess"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	ErrPlayers      = errors.New("two different player names are required")
)

// Game is a saved board for a pair of players.
type Game struct {
	gorm.Model

	GameID uuid.UUID  `gorm:"<-:create;type:varchar;size:36;uniqueIndex"`
	White  string     `gorm:"type:varchar;size:64;uniqueIndex:idx_players;not null"`
	Black  string     `gorm:"type:varchar;size:64;uniqueIndex:idx_players;not null"`
	Board  boardState `gorm:"type:varchar;size:72;not null"`
}

// Archive keeps games between sessions.
type Archive interface {
	FindByPlayers(ctx context.Context, white, black string) (*Game, error)
	Get(ctx context.Context, id uuid.UUID) (*Game, error)
	Save(ctx context.Context, game *Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Sessions holds the current board of games in play.
type Sessions interface {
	Load(ctx context.Context, id uuid.UUID) (boardState, bool, error)
	Store(ctx context.Context, id uuid.UUID, board boardState) error
	Remove(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Service runs games. Moves on one game are serialised; different games
// proceed independently.
type Service struct {
	archive  Archive
	sessions Sessions

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService NewService.
func NewService(archive Archive, sessions Sessions) *Service {
	return &Service{archive: archive, sessions: sessions, locks: make(map[string]*sync.Mutex)}
}

func (s *Service) lock(id uuid.UUID) func() {
	return s.lockKey("game:" + id.String())
}

// lockPlayers guards the lookup and creation of the pair's game.
func (s *Service) lockPlayers(white, black string) func() {
	return s.lockKey("players:" + white + "\x00" + black)
}

func (s *Service) lockKey(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *Service) forget(id uuid.UUID) {
	s.mu.Lock()
	delete(s.locks, "game:"+id.String())
	s.mu.Unlock()
}

// Start resumes the pair's saved game or creates a new one.
func (s *Service) Start(ctx context.Context, white, black string) (*Game, error) {
	white, black = strings.TrimSpace(white), strings.TrimSpace(black)
	if white == "" || black == "" || white == black {
		return nil, ErrPlayers
	}
	game, err := s.findOrCreate(ctx, white, black)
	if err != nil {
		return nil, err
	}

	defer s.lock(game.GameID)()
	if board, ok, err := s.sessions.Load(ctx, game.GameID); err != nil {
		return nil, err
	} else if ok {
		game.Board = board
		return game, nil
	}
	if err := s.sessions.Store(ctx, game.GameID, game.Board); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Service) findOrCreate(ctx context.Context, white, black string) (*Game, error) {
	defer s.lockPlayers(white, black)()
	game, err := s.archive.FindByPlayers(ctx, white, black)
	if !errors.Is(err, ErrGameNotFound) {
		return game, err
	}
	game = &Game{GameID: uuid.NewV4(), White: white, Black: black, Board: boardState{chess.InitialBoard()}}
	if err := s.archive.Save(ctx, game); err != nil {
		return nil, err
	}
	log.WithField("game", game.GameID).WithField("white", white).WithField("black", black).Info("new game")
	return game, nil
}

// Game returns the game with its current board.
func (s *Service) Game(ctx context.Context, id uuid.UUID) (*Game, error) {
	game, err := s.archive.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	board, ok, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		game.Board = board
	}
	return game, nil
}

// Move plays source to target, given as square codes.
func (s *Service) Move(ctx context.Context, id uuid.UUID, source, target string) (*Game, error) {
	defer s.lock(id)()
	game, err := s.Game(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Board.Finished() {
		return nil, ErrGameOver
	}
	board, err := game.Board.MoveCode(source, target)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Store(ctx, id, boardState{board}); err != nil {
		return nil, err
	}
	game.Board = boardState{board}
	log.WithField("game", id).WithField("move", source+target).WithField("turn", board.Turn()).Debug("moved")
	if board.Finished() {
		log.WithField("game", id).WithField("winner", chess.NewScoreboard(board).Winner).Info("game over")
	}
	return game, nil
}

// Destinations lists the codes the piece on source may move to.
func (s *Service) Destinations(ctx context.Context, id uuid.UUID, source string) ([]string, error) {
	position, err := chess.From(source)
	if err != nil {
		return nil, err
	}
	game, err := s.Game(ctx, id)
	if err != nil {
		return nil, err
	}
	targets := game.Board.Destinations(position)
	codes := make([]string, 0, len(targets))
	for _, target := range targets {
		codes = append(codes, target.String())
	}
	return codes, nil
}

// Save writes the current board to the archive and ends the session.
func (s *Service) Save(ctx context.Context, id uuid.UUID) (*Game, error) {
	defer s.lock(id)()
	game, err := s.Game(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.archive.Save(ctx, game); err != nil {
		return nil, err
	}
	if err := s.sessions.Remove(ctx, id); err != nil {
		return nil, err
	}
	log.WithField("game", id).WithField("turn", game.Board.Turn()).Info("saved game")
	return game, nil
}

// Delete forgets the game everywhere.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lock(id)
	defer func() {
		unlock()
		s.forget(id)
	}()
	if _, err := s.archive.Get(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.Remove(ctx, id); err != nil {
		return err
	}
	if err := s.archive.Delete(ctx, id); err != nil {
		return err
	}
	log.WithField("game", id).Info("deleted game")
	return nil
}

// EmptyRows is the blank board shown before a game starts.
func (s *Service) EmptyRows() [][]string {
	return chess.EmptyBoard().Rows()
}

// Close releases both stores.
func (s *Service) Close() error {
	serr := s.sessions.Close()
	if err := s.archive.Close(); err != nil {
		return err
	}
	if serr != nil {
		return fmt.Errorf("close sessions: %w", serr)
	}
	return nil
}
