// Command print-tasks prints one user's tasks one at a time, pausing between
// them.
//
// Usage:
//
//	print-tasks -user 1 [-delay 10s]
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
	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/job"
	"github.com/phrazzld/tasklog-api/internal/platform/logger"
	"github.com/phrazzld/tasklog-api/internal/platform/postgres"
	"github.com/phrazzld/tasklog-api/internal/service"
)

const defaultDelay = 10 * time.Second

// userLookup confirms that the requested user exists.
type userLookup interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type options struct {
	userID int64
	delay  time.Duration
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("print-tasks: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		stop()
		log.Fatalf("print-tasks: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("print-tasks", flag.ContinueOnError)
	fs.Int64Var(&opts.userID, "user", 0, "id of the user whose tasks are printed (required)")
	fs.DurationVar(&opts.delay, "delay", defaultDelay, "pause between two tasks")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.userID <= 0 {
		return options{}, errors.New("-user must be a positive user id")
	}
	if opts.delay < 0 {
		return options{}, errors.New("-delay cannot be negative")
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
	loc, err := time.LoadLocation(cfg.Report.TimeZone)
	if err != nil {
		return fmt.Errorf("failed to load time zone %q: %w", cfg.Report.TimeZone, err)
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

	users := service.NewUserService(postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, l), l)
	tasks, err := service.NewTaskService(postgres.NewPostgresTaskStore(db, l), l)
	if err != nil {
		return err
	}
	return printTasks(ctx, users, tasks, opts, loc, os.Stdout)
}

// printTasks writes each task of opts.userID to out, waiting opts.delay
// between tasks. It stops early when ctx is cancelled. An unknown user is an
// error rather than an empty listing.
func printTasks(
	ctx context.Context,
	users userLookup,
	tasks job.TaskLister,
	opts options,
	loc *time.Location,
	out io.Writer,
) error {
	if _, err := users.GetUser(ctx, opts.userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fmt.Errorf("user %d not found", opts.userID)
		}
		return fmt.Errorf("failed to look up user %d: %w", opts.userID, err)
	}

	list, err := tasks.ListByOwner(ctx, opts.userID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, job.FormatTaskReport(opts.userID, nil, loc))
		return err
	}

	for i, t := range list {
		if i > 0 {
			if err := sleep(ctx, opts.delay); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out, job.FormatTaskLine(t, loc)); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
