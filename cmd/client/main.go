package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"djirgha/internal/ansii"
	"djirgha/internal/board"
	"djirgha/internal/client"
	"djirgha/internal/config"
	"djirgha/internal/netwrk"
	"djirgha/internal/preview"
	"djirgha/internal/raster"
	"djirgha/internal/renderer"
	"djirgha/internal/window"
)

const terminalLogRows = 3

func main() {
	frontend := flag.String("frontend", "", "window, terminal or preview")
	server := flag.String("server", "", "game server base url")
	boardPath := flag.String("board", "", "board layout json")
	flag.Parse()

	config.LoadConfig(flag.Arg(0))
	if *frontend != "" {
		config.Config.Frontend = *frontend
	}
	if *server != "" {
		config.Config.Server = *server
	}
	if *boardPath != "" {
		config.Config.Board = *boardPath
	}

	logOut := setupLogging(config.Config)
	err := run()
	if err != nil {
		log.Error().Err(err).Msg("client stopped")
		if config.Config.Frontend == config.FrontendTerminal {
			// the log is hidden while the terminal front-end runs
			fmt.Fprintln(os.Stderr, "djirgha:", err)
		}
	}
	if logOut != nil {
		logOut.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func run() error {
	if err := config.Config.Validate(); err != nil {
		return fmt.Errorf("bad configuration: %w", err)
	}

	params, err := board.Load(config.Config.Board)
	if err != nil {
		return fmt.Errorf("load board %q: %w", config.Config.Board, err)
	}

	api, err := netwrk.NewClient(config.Config.Server, config.Config.RequestTimeout.Std())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := client.Options{
		Tolerance:    config.Config.Tolerance,
		BlinkDelay:   config.Config.BlinkDelay.Std(),
		PollInterval: config.Config.PollInterval.Std(),
		LogLines:     config.Config.LogLines,
	}

	log.Info().
		Str("server", config.Config.Server).
		Str("frontend", config.Config.Frontend).
		Int("points", len(params.Points)).
		Msg("starting djirgha client")

	switch config.Config.Frontend {
	case config.FrontendWindow:
		win := window.New(params.Width, params.Height)
		ctl := start(ctx, params, win.Surface(), api, opts)
		if err := win.Run(ctx, ctl); err != nil {
			return fmt.Errorf("window: %w", err)
		}

	case config.FrontendTerminal:
		if !ansii.IsTerminal() {
			return errors.New("terminal front-end needs an interactive terminal")
		}
		term, err := ansii.NewTerminal(params.Width, params.Height, terminalLogRows)
		if err != nil {
			return err
		}
		ctl := start(ctx, params, term.Canvas(), api, opts)
		if err := term.Run(ctx, ctl); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}

	case config.FrontendPreview:
		surface := raster.New(params.Width, params.Height)
		ctl := start(ctx, params, surface, api, opts)
		if err := preview.New(ctl, surface).Start(ctx, config.Config.PreviewAddr); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}
	log.Info().Msg("bye")
	return nil
}

// start runs the controller loop in the background.
func start(ctx context.Context, params board.Params, surface renderer.Surface, api *netwrk.Client, opts client.Options) *client.Controller {
	ctl := client.New(params, surface, api, opts)
	go func() {
		if err := ctl.Run(ctx); err != nil {
			log.Error().Err(err).Msg("controller stopped")
		}
	}()
	return ctl
}

// setupLogging points the global logger at stderr, or at the log file when
// the terminal front-end owns the screen. The returned file, if any, must be
// closed by the caller.
func setupLogging(c config.Configuration) *os.File {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	var file *os.File
	if c.Frontend == config.FrontendTerminal {
		out = io.Discard
		if c.LogFile != "" {
			f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				file = f
				out = f
			}
		}
	} else if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			file = f
			out = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr}, f)
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return file
}
