package commands

import (
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/kitchenpal/internal/config"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// version is overridden at build time with -ldflags "-X ...commands.version=".
var version = "dev"

var (
	cfgPath  string
	verbose  bool
	quiet    bool
	logFile  string
	noSpeech bool
	noAI     bool
	voice    string
	theme    string

	cfg config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kitchenpal",
		Short:         "Kitchen companion: conversions, timers, notes and a chef to ask",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &c)
			if err := c.Validate(); err != nil {
				return err
			}
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cfg)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file, TOML or YAML (default ~/.kitchenpal/config.toml)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose/debug logging")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "disable all logging")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	root.PersistentFlags().BoolVar(&noSpeech, "no-speech", false, "disable read-aloud and voice input")
	root.PersistentFlags().BoolVar(&noAI, "no-ai", false, "disable Chef Gemini even if GEMINI_API_KEY is set")
	root.PersistentFlags().StringVar(&voice, "voice", "", "read-aloud accent: us, uk or india")
	root.PersistentFlags().StringVar(&theme, "theme", "", "colour theme: light or dark")

	root.AddCommand(convertCmd(), unitsCmd(), versionCmd())
	return root
}

// applyFlags puts explicitly set flags on top of the loaded config.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if verbose {
		c.LogLevel = logger.LevelVerbose.String()
	}
	if quiet {
		c.LogLevel = logger.LevelOff.String()
	}
	if flags.Changed("log-file") {
		c.LogFile = logFile
	}
	if noSpeech {
		c.Speech.Enabled = false
	}
	if noAI {
		c.Chat.Enabled = false
	}
	if voice != "" {
		c.Speech.Voice = voice
	}
	if theme != "" {
		c.Theme = theme
	}
}
