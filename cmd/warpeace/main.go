package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/warpeace/internal/app"
	"github.com/chriscorrea/warpeace/internal/spinner"
)

const version = "warpeace v0.1.0"

// errArgCount is returned when the command line does not name exactly one book.
var errArgCount = errors.New("invalid number of arguments")

// cli holds the state shared by the root command and its subcommands.
type cli struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"war-terms":    "war_terms",
	"peace-terms":  "peace_terms",
	"strategy":     "strategy",
	"spread":       "spread",
	"no-undecided": "no_undecided",
	"stem":         "stem",
	"workers":      "workers",
	"heading":      "heading",
	"end-marker":   "end_marker",
	"relevance":    "relevance",
	"format":       "format",
	"bare":         "bare",
	"summary":      "summary",
	"quiet":        "quiet",
	"debug":        "debug",
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), stdout: stdout, stderr: stderr}
	defaults := app.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "warpeace <book>",
		Short: "Label every chapter of a book as WAR or PEACE",
		Long: `Warpeace splits a book into chapters and labels each one WAR, PEACE or UNDECIDED
by matching its words against two term lists. The book may be a local file, a URL,
or "-" for standard input.

Examples:
  warpeace book.txt
  warpeace --strategy weighted --summary book.txt
  curl -s https://www.gutenberg.org/cache/epub/2600/pg2600.txt | warpeace -`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &app.Error{Stage: app.Loading, Kind: app.KindUsage, Op: "check arguments", Err: errArgCount}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initConfig(); err != nil {
				return err
			}
			setupLogger(c.stderr, c.v.GetBool("debug"), c.v.GetBool("quiet"))
			if used := c.v.ConfigFileUsed(); used != "" {
				slog.Debug("Using config file", "path", used)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := buildConfig(c.v, args)
			if err != nil {
				return err
			}
			config.Color = spinner.IsTerminal(c.stdout)

			// create context with signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, err := app.Run(ctx, config)
			if err != nil {
				return err
			}
			return app.Render(c.stdout, report, app.RenderOptionsFrom(config))
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &app.Error{Stage: app.Loading, Kind: app.KindUsage, Op: "parse flags", Err: err}
	})

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./warpeace.yaml or $HOME/.warpeace/config.yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors and hide the progress spinner")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	flags := rootCmd.Flags()
	flags.String("war-terms", defaults.WarTermsPath, "War term list, one term per line")
	flags.String("peace-terms", defaults.PeaceTermsPath, "Peace term list, one term per line")
	flags.StringP("strategy", "s", defaults.Strategy, "Classification strategy: frequency or weighted")
	flags.String("spread", defaults.Spread, "Weighted spread of match positions: alternating or span")
	flags.Bool("no-undecided", false, "Report undecided chapters as PEACE")
	flags.Bool("stem", false, "Stem terms and words before matching")
	flags.IntP("workers", "w", defaults.Workers, "Number of chapters classified concurrently")
	flags.String("heading", defaults.Heading, "Keyword that starts a chapter heading")
	flags.String("end-marker", "", "Literal text that ends the last chapter (default: the Gutenberg END OF banner)")
	flags.Bool("relevance", false, "Add BM25 relevance scores to JSON and YAML reports")
	flags.StringP("format", "f", defaults.Format.String(), "Output format: text, json or yaml")
	flags.Bool("bare", false, "Text output: print only the label of each chapter")
	flags.Bool("summary", false, "Text output: append label totals")

	for flag, key := range flagKeys {
		f := flags.Lookup(flag)
		if f == nil {
			f = rootCmd.PersistentFlags().Lookup(flag)
		}
		_ = c.v.BindPFlag(key, f)
	}

	rootCmd.AddCommand(c.newConfigCmd(), newVersionCmd())
	return rootCmd
}

// initConfig reads in config file and ENV variables
func (c *cli) initConfig() error {
	switch {
	case c.cfgFile != "":
		c.v.SetConfigFile(c.cfgFile)
	case fileExists("warpeace.yaml"):
		c.v.SetConfigFile("warpeace.yaml")
	default:
		home, err := os.UserHomeDir()
		if err == nil {
			c.v.AddConfigPath(filepath.Join(home, ".warpeace"))
		}
		c.v.SetConfigName("config")
		c.v.SetConfigType("yaml")
	}

	// read in environment variables that match WARPEACE_*
	c.v.SetEnvPrefix("WARPEACE")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return &app.Error{Stage: app.Loading, Kind: app.KindUsage, Op: "read config file", Err: err}
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// buildConfig constructs an app.Config from bound configuration keys and arguments
func buildConfig(v *viper.Viper, args []string) (app.Config, error) {
	cfg := app.DefaultConfig()
	if len(args) > 0 {
		cfg.Source = args[0]
	}

	cfg.WarTermsPath = v.GetString("war_terms")
	cfg.PeaceTermsPath = v.GetString("peace_terms")
	cfg.Strategy = v.GetString("strategy")
	cfg.Spread = v.GetString("spread")
	cfg.NoUndecided = v.GetBool("no_undecided")
	cfg.Stem = v.GetBool("stem")
	cfg.Workers = v.GetInt("workers")
	cfg.Heading = v.GetString("heading")
	cfg.EndMarker = v.GetString("end_marker")
	cfg.Relevance = v.GetBool("relevance")
	cfg.Bare = v.GetBool("bare")
	cfg.Summary = v.GetBool("summary")
	cfg.Quiet = v.GetBool("quiet")
	cfg.Debug = v.GetBool("debug")

	format, err := app.ParseOutputFormat(v.GetString("format"))
	if err != nil {
		return cfg, &app.Error{Stage: app.Loading, Kind: app.KindUsage, Op: "check configuration", Err: err}
	}
	cfg.Format = format

	return cfg, nil
}

func (c *cli) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect warpeace configuration",
		Long: `Inspect warpeace configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (WARPEACE_*)
3. Config file (./warpeace.yaml or ~/.warpeace/config.yaml)
4. Defaults`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(c.v, nil)
			if err != nil {
				return err
			}

			if used := c.v.ConfigFileUsed(); used != "" && fileExists(used) {
				fmt.Fprintf(c.stderr, "Configuration file: %s\n", used)
			} else {
				fmt.Fprintln(c.stderr, "No configuration file found")
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = c.stdout.Write(data)
			return err
		},
	})
	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	// log to stderr until flags are read, so early failures are still reported
	setupLogger(stderr, false, false)

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logFailure(err)
		if app.KindOf(err) == app.KindUsage {
			fmt.Fprintf(stderr, "Usage: %s\n", rootCmd.UseLine())
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
