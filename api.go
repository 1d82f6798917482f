package main

import (
	"errors"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"github.com/maplefeline/webchess/chess"
)

type startRequest struct {
	White string
	Black string
}

type moveRequest struct {
	Source string
	Target string
}

type boardResponse struct {
	Href string
	Rows [][]string
}

type gameView struct {
	GameID uuid.UUID
	White  string
	Black  string
	Turn   int
	ToMove string
	Rows   [][]string
	Result resultView
}

type resultView struct {
	White    float64
	Black    float64
	Finished bool
	Winner   string
}

type gameResponse struct {
	Href string
	Game gameView
}

type pathsResponse struct {
	Href         string
	Source       string
	Destinations []string
}

type resultResponse struct {
	Href   string
	Result resultView
}

func errToHTTP(err error) error {
	switch {
	case errors.Is(err, ErrGameNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.ErrNotFound
	case errors.Is(err, chess.ErrInvalidCoordinate):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, chess.ErrIllegalPath):
		return echo.NewHTTPError(http.StatusBadRequest, chess.ErrIllegalPath.Error())
	case errors.Is(err, chess.ErrIllegalMove):
		return echo.NewHTTPError(http.StatusBadRequest, chess.ErrIllegalMove.Error())
	case errors.Is(err, ErrGameOver), errors.Is(err, ErrPlayers):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func gameHref(id uuid.UUID) string {
	return path.Join("/games", id.String())
}

func viewResult(board chess.Board) resultView {
	result := chess.NewScoreboard(board)
	view := resultView{White: result.White, Black: result.Black, Finished: result.Finished}
	if result.Winner != chess.NoColor {
		view.Winner = result.Winner.String()
	}
	return view
}

func responseGame(game *Game) gameResponse {
	board := game.Board.Board
	return gameResponse{
		Href: gameHref(game.GameID),
		Game: gameView{
			GameID: game.GameID,
			White:  game.White,
			Black:  game.Black,
			Turn:   board.Turn(),
			ToMove: board.ToMove().String(),
			Rows:   board.Rows(),
			Result: viewResult(board),
		},
	}
}

func apiHandler(service *Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/board", func(c echo.Context) error {
		return c.JSON(http.StatusOK, boardResponse{Href: "/board", Rows: service.EmptyRows()})
	})
	e.POST("/games", func(c echo.Context) error {
		var request startRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		game, err := service.Start(c.Request().Context(), request.White, request.Black)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, responseGame(game))
	})
	e.GET("/games/:id", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		game, err := service.Game(c.Request().Context(), id)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGame(game))
	})
	e.DELETE("/games/:id", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		if err := service.Delete(c.Request().Context(), id); err != nil {
			return errToHTTP(err)
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/games/:id/paths", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		source := c.QueryParam("source")
		destinations, err := service.Destinations(c.Request().Context(), id, source)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, pathsResponse{
			Href:         path.Join(gameHref(id), "paths"),
			Source:       source,
			Destinations: destinations,
		})
	})
	e.PUT("/games/:id/moves", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		var request moveRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		game, err := service.Move(c.Request().Context(), id, request.Source, request.Target)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGame(game))
	})
	e.GET("/games/:id/result", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		game, err := service.Game(c.Request().Context(), id)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, resultResponse{
			Href:   path.Join(gameHref(id), "result"),
			Result: viewResult(game.Board.Board),
		})
	})
	e.POST("/games/:id/save", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		game, err := service.Save(c.Request().Context(), id)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGame(game))
	})

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}
