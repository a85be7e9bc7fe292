package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/Siroshun09/serrors"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var Migrations embed.FS

func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)

	if err := goose.SetDialect("mysql"); err != nil {
		return serrors.WithStackTrace(err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return serrors.WithStackTrace(err)
	}

	return nil
}
