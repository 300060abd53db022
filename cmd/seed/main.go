package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/loomline/admin-api/internal/config"
	"github.com/loomline/admin-api/internal/database"
	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/service"
	"github.com/loomline/admin-api/internal/utils"
)

// main seeds a back-office account. Account creation is deliberately not
// exposed over HTTP; this is the only write path for the users table.
func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required)")
	fullName := flag.String("name", "", "full name (required)")
	role := flag.String("role", models.RoleSuperAdmin,
		"role: super_admin, accountant, inventory_manager, or order_manager")
	flag.Parse()

	if *email == "" || *password == "" || *fullName == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	authSvc := service.NewAuthService(repository.NewAdminUserRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := authSvc.CreateAdmin(ctx, *email, *password, *fullName, *role); err != nil {
		switch {
		case errors.Is(err, utils.ErrRoleNotAllowed):
			fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		case errors.Is(err, utils.ErrDuplicateEmail):
			fmt.Fprintf(os.Stderr, "an account with email %s already exists\n", *email)
		default:
			fmt.Fprintf(os.Stderr, "failed to create account: %v\n", err)
		}
		os.Exit(1)
	}

	log.Info().Str("email", *email).Str("role", *role).Msg("Admin account created")
}
