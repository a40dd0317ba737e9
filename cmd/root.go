package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/config"
	"github.com/ramanasai/lifelog/internal/db"
	"github.com/ramanasai/lifelog/internal/notify"
	"github.com/ramanasai/lifelog/internal/store"
)

var (
	cfgFile string
	debug   bool
)

// app is what every command works against once PersistentPreRunE has run.
var app struct {
	cfg      config.Config
	journal  *store.Journal
	notifier *notify.Notifier
	log      *slog.Logger
	closers  []io.Closer
}

var rootCmd = &cobra.Command{
	Use:           "lifelog",
	Short:         "Personal life log: categories, journal, moods and stats",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: setup,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// run executes one command line (os.Args when args is nil) and closes
// whatever setup opened, even when setup or the command failed.
func run(ctx context.Context, args []string) (err error) {
	defer func() {
		err = errors.Join(err, teardown())
	}()
	if args != nil {
		rootCmd.SetArgs(args)
	}
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/lifelog/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(tuiCmd, logCmd, listCmd, moodCmd, statsCmd, actionCmd, categoryCmd, versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	app.cfg = cfg

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	app.log = logger

	kvs, closer, err := db.OpenStore(cfg.Storage, logger)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, closer)

	ids, err := store.NewIDGenerator(cfg.IDs.Scheme, time.Now)
	if err != nil {
		return err
	}
	app.journal = store.NewJournal(kvs, ids, time.Now, cfg.Mood.Category)
	app.notifier = notify.New(cfg.Notifications.Enabled, logger)

	logger.Debug("store opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "command", cmd.Name())
	return nil
}

func teardown() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i].Close())
	}
	app.closers = nil
	return errors.Join(errs...)
}

// newLogger writes to stderr, except under the TUI where stderr belongs to
// the screen and logs go to lifelog.log in the data directory.
func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cmd != tuiCmd {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}
	if cfg.Storage.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), nil
	}
	if err := os.MkdirAll(cfg.Storage.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(cfg.Storage.Path, "lifelog.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	app.closers = append(app.closers, f)
	return slog.New(slog.NewTextHandler(f, opts)), nil
}
