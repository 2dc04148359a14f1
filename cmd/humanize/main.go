package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/humanize/internal/app"
	"github.com/chriscorrea/humanize/internal/config"
	"github.com/chriscorrea/humanize/internal/humanize"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from the config file, the environment, command flags and arguments.
// Flags only override file and environment settings when set explicitly.
func buildConfig(cmd *cobra.Command, args []string, mode app.Mode) (app.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if !flags.Changed("config") {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, err
	}

	style := settings.Style
	completion := settings.Completion
	rulesPath := settings.Rules

	// style flags are only registered on the rewriting commands
	if flags.Changed("creativity") {
		style.Creativity, _ = flags.GetFloat64("creativity")
	}
	if flags.Changed("tone") {
		name, _ := flags.GetString("tone")
		tone, err := humanize.ParseTone(name)
		if err != nil {
			return app.Config{}, err
		}
		style.Tone = tone
	}
	if flags.Changed("personal") {
		style.AddPersonalTouches, _ = flags.GetBool("personal")
	}
	if flags.Changed("flatten") {
		flatten, _ := flags.GetBool("flatten")
		style.PreserveFormatting = !flatten
	}

	// completion flags
	if flags.Changed("candidates") {
		completion.Candidates, _ = flags.GetInt("candidates")
	}
	if flags.Changed("model") {
		completion.Model, _ = flags.GetString("model")
	}
	if flags.Changed("base-url") {
		completion.BaseURL, _ = flags.GetString("base-url")
	}
	localFallback, _ := flags.GetBool("local-fallback")

	if flags.Changed("rules") {
		rulesPath, _ = flags.GetString("rules")
	}

	selector, _ := flags.GetString("selector")
	includeAll, _ := flags.GetBool("include-all")
	jsonFlag, _ := flags.GetBool("json")
	stats, _ := flags.GetBool("stats")
	quiet, _ := flags.GetBool("quiet")
	debug, _ := flags.GetBool("debug")

	outputFormat := app.Text
	if jsonFlag {
		outputFormat = app.JSON
	}

	// no arguments means stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	return app.Config{
		Mode:          mode,
		Sources:       sources,
		Selector:      selector,
		IncludeAll:    includeAll,
		Style:         humanize.ValidateOptions(&style),
		Completion:    completion,
		RulesPath:     rulesPath,
		LocalFallback: localFallback,
		OutputFormat:  outputFormat,
		Stats:         stats,
		Quiet:         quiet,
		Debug:         debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// runMode returns a RunE that builds the config and runs the app in mode.
func runMode(mode app.Mode) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// the logger comes first so config loading can log
		debug, _ := cmd.Flags().GetBool("debug")
		setupLogger(debug)

		cfg, err := buildConfig(cmd, args, mode)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("humanize %s failed: %w", mode, err)
		}

		fmt.Println(result)
		return nil
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "humanize [sources...]",
		Short: "Rewrite machine-sounding text so it reads like a person wrote it",
		Long: `Humanize rewrites text that sounds machine-generated. Sources may include URLs, local files, or standard input.

By default a deterministic local rewriter runs: the same input and options always give the same output.
The deep command asks an OpenAI-compatible model for several rewrites and keeps the most natural one.

Examples:
  humanize draft.txt
  humanize --tone casual --creativity 0.9 https://example.com/post
  cat draft.txt | humanize deep --candidates 5
  humanize clean reply.txt
  humanize score original.txt a.txt b.txt`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMode(app.Local),
	}

	deepCmd := &cobra.Command{
		Use:   "deep [sources...]",
		Short: "Generate several LLM rewrites and keep the best-scoring one",
		Long: `Deep sends the text to an OpenAI-compatible chat completion endpoint several times at rising
temperatures, cleans each reply, and prints the candidate with the lowest score.

The API key comes from HUMANIZE_API_KEY, OPENAI_API_KEY, or api_key in the config file.
A local server can be used without a key by setting --base-url.`,
		RunE: runMode(app.Deep),
	}

	cleanCmd := &cobra.Command{
		Use:   "clean [sources...]",
		Short: "Strip assistant chatter and stock phrases from existing text",
		RunE:  runMode(app.Clean),
	}

	scoreCmd := &cobra.Command{
		Use:   "score ORIGINAL CANDIDATE...",
		Short: "Rank candidate rewrites of ORIGINAL, most natural first",
		Long: `Score rates each candidate as a rewrite of ORIGINAL. Lower is better: the score adds stock
discourse phrases, uniform sentence lengths, and too much word overlap with the original.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMode(app.Score),
	}

	// extraction and output flags apply to every command
	rootCmd.PersistentFlags().StringP("selector", "s", "", "CSS selector for HTML sources")
	rootCmd.PersistentFlags().BoolP("include-all", "i", false, "Include all content without readability filtering")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("stats", false, "Print token, word and character counts of input and output")
	rootCmd.PersistentFlags().String("rules", "", "YAML file of denoise rules replacing the built-in list")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.config/humanize/config.yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress warnings and progress")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	addStyleFlags(rootCmd)
	addStyleFlags(deepCmd)

	// deep mode flags
	deepCmd.Flags().IntP("candidates", "n", 0, "Number of completions to request (default from config, 3)")
	deepCmd.Flags().StringP("model", "m", "", "Chat model name (default from config, gpt-4o-mini)")
	deepCmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	deepCmd.Flags().Bool("local-fallback", false, "Use the local rewriter if every completion fails")

	rootCmd.AddCommand(deepCmd, cleanCmd, scoreCmd)
	return rootCmd
}

// addStyleFlags registers the options shared by the rewriting commands.
func addStyleFlags(cmd *cobra.Command) {
	defaults := humanize.DefaultOptions()
	cmd.Flags().Float64P("creativity", "c", defaults.Creativity, "How much to rewrite, from 0 to 1")
	cmd.Flags().StringP("tone", "t", string(defaults.Tone), "Tone: "+humanize.ToneNames())
	cmd.Flags().Bool("personal", false, "Occasionally add first-person asides")
	cmd.Flags().Bool("flatten", false, "Return a single paragraph instead of keeping paragraph breaks")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
