package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"horse.fit/translator/internal/cli"
	"horse.fit/translator/internal/client"
	"horse.fit/translator/internal/config"
	"horse.fit/translator/internal/translation"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	remote := fs.Bool("remote", false, "Fetch the list from the translator API instead of the built-in catalog")
	apiURL := fs.String("api-url", "", "Translator API base URL (overrides TRANSLATOR_API_URL)")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "languages does not accept positional args")
		return 2
	}

	var live client.LanguageSource
	if *remote {
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
		url := cfg.APIURL
		if *apiURL != "" {
			url = *apiURL
		}
		api, err := client.New(url, *timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid API URL: %v\n", err)
			return 2
		}
		live = client.NewHTTPSource(api)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := client.LoadLanguages(ctx, live, client.DefaultStaticSource())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load languages: %v\n", err)
		return 1
	}
	if result.LiveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (showing built-in list)\n", result.LiveErr)
	}

	if err := printLanguages(os.Stdout, result.Languages); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print languages: %v\n", err)
		return 1
	}
	return 0
}

func printLanguages(out io.Writer, langs []translation.Language) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tNATIVE NAME")
	for _, lang := range langs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", lang.Code, lang.Name, lang.NativeName)
	}
	return tw.Flush()
}
