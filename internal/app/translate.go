package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"horse.fit/translator/internal/cli"
	"horse.fit/translator/internal/config"
	"horse.fit/translator/internal/language"
	"horse.fit/translator/internal/logging"
	"horse.fit/translator/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	from := fs.String("from", language.AutoDetect, "Source language code, or auto")
	to := fs.String("to", "", "Target language code (for example: en, es, ja)")
	contextText := fs.String("context", "", "Optional hint about tone or domain")
	provider := fs.String("provider", "", "Translation provider name (groq, huggingface, local)")
	asJSON := fs.Bool("json", false, "Print the full result as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	targetLang := language.NormalizeTag(*to)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--to is required and must be a valid language code")
		printTranslateUsage()
		return 2
	}

	text, err := readTranslateInput(fs.Args(), os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 1
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logger, err := logging.NewWithWriter(os.Stderr, cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	svc, err := buildService(cfg, *provider, translation.ServiceOptions{Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build translation service: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	req := translation.Request{
		Text:           text,
		SourceLanguage: language.NormalizeSource(*from),
		TargetLanguage: targetLang,
	}
	if ctxValue := strings.TrimSpace(*contextText); ctxValue != "" {
		req.Context = &ctxValue
	}

	if err := translateOnce(ctx, svc, req, *asJSON, os.Stdout); err != nil {
		var te *translation.Error
		if errors.As(err, &te) && te.ClientFault() {
			fmt.Fprintf(os.Stderr, "Invalid request: %s\n", te.Detail)
			return 2
		}
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}
	return 0
}

type translator interface {
	Translate(ctx context.Context, req translation.Request) (*translation.Result, error)
}

func translateOnce(ctx context.Context, svc translator, req translation.Request, asJSON bool, out io.Writer) error {
	result, err := svc.Translate(ctx, req)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprintln(out, result.TranslatedText)
	return err
}

// readTranslateInput joins positional args, or reads stdin when there are none.
func readTranslateInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(raw), "\r\n"), nil
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  translator translate --to <lang> [--from auto] [--context <hint>] [--provider groq] [--json] [--env .env] [--timeout 1m] <text...>")
	fmt.Fprintln(os.Stderr, "  echo <text> | translator translate --to <lang>")
}
