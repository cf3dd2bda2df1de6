package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/studframe/internal/config"
	"github.com/philipparndt/studframe/internal/logging"
	"github.com/philipparndt/studframe/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "studframe",
	Short: "Resolve line networks into roll-formed steel stud members",
	Long: `studframe turns a network of centerline segments into steel stud members
for a roll-forming machine. It classifies every joint, orients each stud's web,
trims or extends the studs and lays out the dimples, cuts and holes each joint
needs, then exports one machine line per member.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, verbose)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "studframe.yaml", "Configuration file (defaults apply when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
