package main

import (
	"context"
	"errors"
	"sync"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	uuid "github.com/satori/go.uuid"
	. "gopkg.in/check.v1"

	"github.com/maplefeline/webchess/chess"
)

type errorIsChecker struct {
	*CheckerInfo
}

func (checker *errorIsChecker) Check(params []interface{}, names []string) (result bool, errMsg string) {
	err, ok := params[0].(error)
	if !ok {
		return false, "obtained value is not an error"
	}
	target, ok := params[1].(error)
	if !ok {
		return false, "expected value is not an error"
	}
	return errors.Is(err, target), ""
}

var Wraps Checker = &errorIsChecker{
	&CheckerInfo{Name: "Wraps", Params: []string{"obtained", "expected"}},
}

type ServiceSuite struct {
	mr      *miniredis.Miniredis
	service *Service
	ctx     context.Context
}

var _ = Suite(&ServiceSuite{})

func (s *ServiceSuite) SetUpTest(c *C) {
	mr, err := miniredis.Run()
	c.Assert(err, IsNil)
	s.mr = mr
	archive, err := openBadger("")
	c.Assert(err, IsNil)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.service = NewService(archive, newRedisSessions(rdb, time.Hour))
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest(c *C) {
	c.Assert(s.service.Close(), IsNil)
	s.mr.Close()
}

func (s *ServiceSuite) TestStartCreatesOnce(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	c.Assert(game.Board.Turn(), Equals, 0)
	again, err := s.service.Start(s.ctx, " ann ", "bob")
	c.Assert(err, IsNil)
	c.Assert(uuid.Equal(again.GameID, game.GameID), Equals, true)
	other, err := s.service.Start(s.ctx, "bob", "ann")
	c.Assert(err, IsNil)
	c.Assert(uuid.Equal(other.GameID, game.GameID), Equals, false)
	c.Assert(s.mr.Exists("session:"+game.GameID.String()), Equals, true)
}

func (s *ServiceSuite) TestStartRejectsPlayers(c *C) {
	_, err := s.service.Start(s.ctx, "ann", "ann")
	c.Assert(err, Wraps, ErrPlayers)
	_, err = s.service.Start(s.ctx, "", "bob")
	c.Assert(err, Wraps, ErrPlayers)
}

func (s *ServiceSuite) TestMoveKeepsPriorBoardOnError(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	_, err = s.service.Move(s.ctx, game.GameID, "a1", "a8")
	c.Assert(err, Wraps, chess.ErrIllegalMove)
	_, err = s.service.Move(s.ctx, game.GameID, "e2", "e5")
	c.Assert(err, Wraps, chess.ErrIllegalPath)
	current, err := s.service.Game(s.ctx, game.GameID)
	c.Assert(err, IsNil)
	c.Assert(current.Board.Turn(), Equals, 0)
}

func (s *ServiceSuite) TestConcurrentMovesSerialise(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	var wg sync.WaitGroup
	var mu sync.Mutex
	played := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.service.Move(s.ctx, game.GameID, "e2", "e4"); err == nil {
				mu.Lock()
				played++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	c.Assert(played, Equals, 1)
	current, err := s.service.Game(s.ctx, game.GameID)
	c.Assert(err, IsNil)
	c.Assert(current.Board.Turn(), Equals, 1)
}

func (s *ServiceSuite) TestConcurrentStartCreatesOnce(c *C) {
	var wg sync.WaitGroup
	ids := make(chan uuid.UUID, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			game, err := s.service.Start(s.ctx, "ann", "bob")
			c.Check(err, IsNil)
			if err == nil {
				ids <- game.GameID
			}
		}()
	}
	wg.Wait()
	close(ids)
	stored, err := s.service.archive.FindByPlayers(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	count := 0
	for id := range ids {
		c.Check(uuid.Equal(id, stored.GameID), Equals, true)
		count++
	}
	c.Assert(count, Equals, 8)
}

func (s *ServiceSuite) TestGameOver(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	board, err := chess.NewBoard(map[chess.Position]chess.Piece{
		{File: chess.FileD, Rank: chess.Rank1}: {Kind: chess.Queen, Color: chess.White},
		{File: chess.FileE, Rank: chess.Rank1}: {Kind: chess.King, Color: chess.White},
		{File: chess.FileD, Rank: chess.Rank8}: {Kind: chess.King, Color: chess.Black},
	}, 0)
	c.Assert(err, IsNil)
	c.Assert(s.service.sessions.Store(s.ctx, game.GameID, boardState{board}), IsNil)

	finished, err := s.service.Move(s.ctx, game.GameID, "d1", "d8")
	c.Assert(err, IsNil)
	c.Assert(finished.Board.Finished(), Equals, true)
	_, err = s.service.Move(s.ctx, game.GameID, "e8", "e7")
	c.Assert(err, Wraps, ErrGameOver)
}

func (s *ServiceSuite) TestDestinations(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	codes, err := s.service.Destinations(s.ctx, game.GameID, "b1")
	c.Assert(err, IsNil)
	c.Assert(codes, DeepEquals, []string{"a3", "c3"})
	_, err = s.service.Destinations(s.ctx, game.GameID, "b9")
	c.Assert(err, Wraps, chess.ErrInvalidCoordinate)
}

func (s *ServiceSuite) TestSaveResume(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	_, err = s.service.Move(s.ctx, game.GameID, "d2", "d4")
	c.Assert(err, IsNil)
	saved, err := s.service.Save(s.ctx, game.GameID)
	c.Assert(err, IsNil)
	c.Assert(saved.Board.Turn(), Equals, 1)
	c.Assert(s.mr.Exists("session:"+game.GameID.String()), Equals, false)

	resumed, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	c.Assert(resumed.Board.Turn(), Equals, 1)
	c.Assert(resumed.Board.Rows(), DeepEquals, saved.Board.Rows())
}

func (s *ServiceSuite) TestDelete(c *C) {
	game, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	c.Assert(s.service.Delete(s.ctx, game.GameID), IsNil)
	_, err = s.service.Game(s.ctx, game.GameID)
	c.Assert(err, Wraps, ErrGameNotFound)
	c.Assert(s.service.Delete(s.ctx, game.GameID), Wraps, ErrGameNotFound)

	fresh, err := s.service.Start(s.ctx, "ann", "bob")
	c.Assert(err, IsNil)
	c.Assert(uuid.Equal(fresh.GameID, game.GameID), Equals, false)
}

func (s *ServiceSuite) TestEmptyRows(c *C) {
	rows := s.service.EmptyRows()
	c.Assert(rows, HasLen, 8)
	c.Assert(rows[0], DeepEquals, []string{".", ".", ".", ".", ".", ".", ".", "."})
}
