// Command create-user provisions an account that can obtain access tokens.
//
// Usage:
//
//	create-user -username alice [-password secret]
//
// When -password is omitted the password is read from TASKLOG_NEW_USER_PASSWORD.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/tasklog-api/internal/config"
	"github.com/phrazzld/tasklog-api/internal/platform/logger"
	"github.com/phrazzld/tasklog-api/internal/platform/postgres"
	"github.com/phrazzld/tasklog-api/internal/service"
	"github.com/phrazzld/tasklog-api/internal/store"
)

// passwordEnvVar keeps the password out of the process list.
const passwordEnvVar = "TASKLOG_NEW_USER_PASSWORD"

type options struct {
	username string
	password string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("create-user: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		stop()
		log.Fatalf("create-user: %v", err)
	}
}

func parseFlags(args []string, getenv func(string) string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.StringVar(&opts.username, "username", "", "username of the new account (required)")
	fs.StringVar(&opts.password, "password", "", "password of the new account (default $"+passwordEnvVar+")")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.password == "" {
		opts.password = getenv(passwordEnvVar)
	}
	if opts.username == "" {
		return options{}, errors.New("-username is required")
	}
	if opts.password == "" {
		return options{}, fmt.Errorf("-password or %s is required", passwordEnvVar)
	}
	return opts, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadFor(config.SectionServer, config.SectionDatabase)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("Error closing database connection", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	users := service.NewUserService(postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, l), l)
	return createUser(ctx, users, opts, os.Stdout)
}

// createUser creates the account and reports its id on out.
func createUser(ctx context.Context, users service.UserService, opts options, out io.Writer) error {
	user, err := users.CreateUser(ctx, opts.username, opts.password)
	if err != nil {
		if store.IsDuplicateError(err) {
			return fmt.Errorf("username %q is already taken", opts.username)
		}
		return err
	}

	_, err = fmt.Fprintf(out, "Created user %q with id %d\n", user.Username, user.ID)
	return err
}
