package database

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

// Schema holds the history tables written by the ingestor.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         BIGSERIAL PRIMARY KEY,
	taken_at   TIMESTAMPTZ NOT NULL,
	weather    TEXT NOT NULL,
	payload    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS snapshots_taken_at ON snapshots (taken_at DESC);

CREATE TABLE IF NOT EXISTS predictions (
	id          TEXT PRIMARY KEY,
	module      TEXT NOT NULL,
	type        TEXT NOT NULL,
	title       TEXT NOT NULL,
	impact      TEXT NOT NULL,
	confidence  DOUBLE PRECISION NOT NULL,
	probability DOUBLE PRECISION NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	payload     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS predictions_created_at ON predictions (created_at DESC);
`

func Connect() (*sqlx.DB, error) {
	dsn := viper.GetString("DB_DSN")
	return sqlx.Connect("pgx", dsn)
}

// Migrate applies Schema. It is safe to run on every start.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(Schema)
	return err
}
