package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"equipment-access/pkg/config"
	"equipment-access/pkg/constants"
	"equipment-access/pkg/utils"
)

// SeedAdminUser creates the initial administrator account. It is a
// no-op when the account already exists or when the credentials are
// not configured.
func SeedAdminUser(db *pgxpool.Pool, cfg *config.Config) error {
	ctx := context.Background()
	log.Println("  - running admin user seeder...")

	username := cfg.Seeder.AdminUsername
	email := cfg.Seeder.AdminEmail
	password := cfg.Seeder.AdminPassword

	if email == "" || password == "" {
		log.Println("    SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping")
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID uint64
	err = tx.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID)
	if err == nil {
		log.Println("    admin user already exists, leaving as is")
		return tx.Commit(ctx)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (username, email, full_name, role, hashed_password, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query,
		username, email, "System Administrator", constants.RoleAdmin, hashedPassword,
	).Scan(&userID); err != nil {
		return err
	}

	log.Printf("    created admin user %q (id=%d)", username, userID)
	return tx.Commit(ctx)
}
