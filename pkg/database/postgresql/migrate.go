package postgresql

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"equipment-access/migrations"
)

// Migrate applies all pending SQL migrations. goose needs a
// database/sql handle, so it opens its own short-lived connection
// through the pgx stdlib driver.
func Migrate(ctx context.Context, dsn string) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return goose.UpContext(ctx, sqlDB, ".")
}
