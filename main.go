package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type CLI struct {
	Config   string `short:"c" default:"config.yml" help:"Path to YAML configuration file"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`

	Play   PlayCmd   `cmd:"" default:"1" help:"Play a game in the terminal"`
	Replay ReplayCmd `cmd:"" help:"Apply moves to a new game and print the result"`
}

type runContext struct {
	ctx    context.Context
	logger *slog.Logger
	conf   *config.Config
}

type PlayCmd struct{}

func (that *PlayCmd) Run(rc *runContext) error {
	return app.RunApp(rc.ctx, rc.logger, rc.conf)
}

type ReplayCmd struct {
	Moves      []int `arg:"" optional:"" help:"Cells to play in turn, 0-8 row by row"`
	Jump       int   `default:"-1" help:"Step to jump to after the moves"`
	Descending bool  `help:"List moves newest first"`
}

func (that *ReplayCmd) Run(rc *runContext) error {
	order, err := rc.conf.UI.InitialOrder()
	if err != nil {
		return err
	}

	if that.Descending {
		order = entity.OrderDescending
	}

	return app.Replay(rc.ctx, rc.logger, quartz.NewReal(), os.Stdout, app.ReplayOptions{
		Order: order,
		Moves: that.Moves,
		Jump:  that.Jump,
	})
}

// main - is the entry point of the application. It parses the command line, initializes the
// configuration and logger, and runs the selected command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("tictactoe"),
		kong.Description("Tic-tac-toe with move history and time travel"),
		kong.UsageOnError(),
	)

	conf := initConfig(cli.Config)
	if cli.LogLevel != "" {
		conf.LogLevel = cli.LogLevel
	}

	logger, logFile := initLogger(conf)
	defer func() {
		_ = logFile.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := kctx.Run(&runContext{ctx: ctx, logger: logger, conf: conf}); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig(path string) *config.Config {
	if filepath.IsAbs(path) {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, path))
}

// initialize logger. The terminal belongs to the game, so records go to the log file.
func initLogger(conf *config.Config) (*slog.Logger, *os.File) {
	var level log.Level

	switch conf.LogLevel {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	default:
		level = log.InfoLevel
	}

	logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}

	handler := log.NewWithOptions(logFile, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
	})

	return slog.New(handler), logFile
}
