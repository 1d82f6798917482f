package main

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/apex/log"
	uuid "github.com/satori/go.uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormArchive struct {
	db *gorm.DB
}

func openPostgres(dsn string) (*gormArchive, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		QueryFields: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns sets the maximum number of connections in the idle connection pool.
	sqlDB.SetMaxIdleConns(10)
	// SetMaxOpenConns sets the maximum number of open connections to the database.
	sqlDB.SetMaxOpenConns(100)
	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.AutoMigrate(&Game{}); err != nil {
		return nil, err
	}
	return &gormArchive{db: database}, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGameNotFound
	}
	return err
}

func (archive *gormArchive) FindByPlayers(ctx context.Context, white, black string) (*Game, error) {
	var game Game
	if err := archive.db.WithContext(ctx).Where("white = ? AND black = ?", white, black).First(&game).Error; err != nil {
		return nil, notFound(err)
	}
	return &game, nil
}

func (archive *gormArchive) Get(ctx context.Context, id uuid.UUID) (*Game, error) {
	var game Game
	if err := archive.db.WithContext(ctx).Where("game_id = ?", id).First(&game).Error; err != nil {
		return nil, notFound(err)
	}
	return &game, nil
}

func (archive *gormArchive) Save(ctx context.Context, game *Game) error {
	return archive.db.WithContext(ctx).Save(game).Error
}

func (archive *gormArchive) Delete(ctx context.Context, id uuid.UUID) error {
	return archive.db.WithContext(ctx).Unscoped().Where("game_id = ?", id).Delete(&Game{}).Error
}

func (archive *gormArchive) Close() error {
	sqlDB, err := archive.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func idleError(message string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	log.WithField("type", reflect.TypeOf(err)).WithError(err).Error(message)
}
