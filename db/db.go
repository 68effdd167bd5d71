package db

import (
	"database/sql"
	"fmt"

	"github.com/casebridge-io/casebridge/config"
	"github.com/casebridge-io/casebridge/db/dao"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type DB struct {
	DB  *sqlx.DB
	log *zap.SugaredLogger

	Events dao.EventDAO
}

func NewSqlDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(int(cfg.MaxPoolSize))
	db.SetMaxIdleConns(int(cfg.MaxPoolSize))
	return db, nil
}

func NewDB(sqlDB *sql.DB, log *zap.SugaredLogger) *DB {
	sqlxDB := sqlx.NewDb(sqlDB, "sqlite3")

	return &DB{
		DB:     sqlxDB,
		log:    log,
		Events: dao.NewEventDao(sqlxDB),
	}
}

func (db *DB) Ping() error {
	return db.DB.Ping()
}

func (db *DB) Truncate(table string) error {
	statement := fmt.Sprintf("DELETE FROM %s", table)
	_, err := db.DB.Exec(statement)
	return err
}

func (db *DB) Close() error {
	return db.DB.Close()
}
