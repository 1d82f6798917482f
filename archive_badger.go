package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	uuid "github.com/satori/go.uuid"
)

const (
	keyGamePrefix    = "game:"
	keyPlayersPrefix = "players:"
)

// badgerArchive stores each Game as JSON under game:<id>, with a
// players:<white>\x00<black> index pointing at the id.
type badgerArchive struct {
	db *badger.DB
}

func openBadger(path string) (*badgerArchive, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerArchive{db: db}, nil
}

func gameKey(id uuid.UUID) []byte {
	return []byte(keyGamePrefix + id.String())
}

func playersKey(white, black string) []byte {
	return []byte(keyPlayersPrefix + white + "\x00" + black)
}

func (archive *badgerArchive) get(txn *badger.Txn, id uuid.UUID) (*Game, error) {
	item, err := txn.Get(gameKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var game Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (archive *badgerArchive) FindByPlayers(ctx context.Context, white, black string) (*Game, error) {
	var game *Game
	err := archive.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(playersKey(white, black))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return err
		}
		game, err = archive.get(txn, id)
		return err
	})
	return game, err
}

func (archive *badgerArchive) Get(ctx context.Context, id uuid.UUID) (*Game, error) {
	var game *Game
	err := archive.db.View(func(txn *badger.Txn) error {
		var err error
		game, err = archive.get(txn, id)
		return err
	})
	return game, err
}

func (archive *badgerArchive) Save(ctx context.Context, game *Game) error {
	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now
	raw, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return archive.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(gameKey(game.GameID), raw); err != nil {
			return err
		}
		return txn.Set(playersKey(game.White, game.Black), game.GameID.Bytes())
	})
}

func (archive *badgerArchive) Delete(ctx context.Context, id uuid.UUID) error {
	return archive.db.Update(func(txn *badger.Txn) error {
		game, err := archive.get(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(playersKey(game.White, game.Black)); err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

func (archive *badgerArchive) Close() error {
	return archive.db.Close()
}
