package cmd

import (
	"os"

	"github.com/killallgit/converter-api/pkg/config"
	"github.com/killallgit/converter-api/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "converter-api",
	Short: "Video to MP3 Converter API server",
	Long: `Video to MP3 Converter API - upload a video, download its audio as MP3

The server validates uploads (type, size) and hands accepted videos to a
configurable transcoder backend.

Backends:
  • placeholder    silent MP3 frames, no real transcoding (default)
  • unimplemented  always fails after a delay
  • ffmpeg         runs the ffmpeg binary on each upload
  • remote         delegates to an HTTP transcoding service`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default "+config.DefaultConfigPath+")")

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it.
// Commands that don't need config (version, help) never call it.
func loadConfig() (*config.Config, error) {
	config.SetConfigFile(configFile)
	if err := config.Init(); err != nil {
		return nil, err
	}
	return config.GetConfig()
}

// newLogger builds the logger from config, letting explicitly set flags win
func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.SugaredLogger, error) {
	opts := logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") || opts.Level == "" {
		opts.Level, _ = flags.GetString("log-level")
	}
	if jsonLogs, _ := flags.GetBool("json-logs"); jsonLogs {
		opts.Format = "json"
	}

	return logger.New(opts)
}
