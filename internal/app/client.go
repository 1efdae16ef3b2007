package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"horse.fit/translator/internal/cli"
	"horse.fit/translator/internal/client"
	"horse.fit/translator/internal/config"
	"horse.fit/translator/internal/logging"
	"horse.fit/translator/internal/orchestrator"
	"horse.fit/translator/internal/tui"
)

func runClient(args []string) int {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	apiURL := fs.String("api-url", "", "Translator API base URL (overrides TRANSLATOR_API_URL)")
	debounce := fs.Duration("debounce", 0, "Pause after typing before translating (overrides DEBOUNCE_DELAY)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "client does not accept positional args")
		return 2
	}
	if *debounce < 0 {
		fmt.Fprintln(os.Stderr, "--debounce must be >= 0")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if url := strings.TrimSpace(*apiURL); url != "" {
		cfg.APIURL = url
	}
	if *debounce > 0 {
		cfg.DebounceDelay = *debounce
	}

	logger, closeLog, err := clientLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer closeLog()

	api, err := client.New(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid TRANSLATOR_API_URL: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, tui.Options{
		Backend:   api,
		Languages: client.NewHTTPSource(api),
		Fallback:  client.DefaultStaticSource(),
		Machine: orchestrator.Config{
			Delay:        cfg.DebounceDelay,
			MaxChars:     cfg.MaxTextLength,
			CopyFeedback: cfg.CopyFeedback,
		},
		Logger: logger,
		APIURL: cfg.APIURL,
	})
	if err != nil {
		logger.Error().Err(err).Msg("client exited with error")
		fmt.Fprintf(os.Stderr, "Client failed: %v\n", err)
		return 1
	}
	return 0
}

// clientLogger writes to CLIENT_LOG_FILE when set. The terminal belongs to the
// UI, so logs are discarded otherwise.
func clientLogger(cfg *config.ClientConfig) (zerolog.Logger, func(), error) {
	path := strings.TrimSpace(cfg.LogFile)
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open CLIENT_LOG_FILE %q: %w", path, err)
	}
	logger, err := logging.NewWithWriter(f, cfg.Environment, cfg.LogLevel)
	if err != nil {
		_ = f.Close()
		return zerolog.Logger{}, nil, err
	}
	return logger, func() { _ = f.Close() }, nil
}
