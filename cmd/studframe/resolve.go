package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/philipparndt/studframe/internal/config"
	"github.com/philipparndt/studframe/pkg/analysis"
	"github.com/philipparndt/studframe/pkg/export"
	"github.com/philipparndt/studframe/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrInvalidJoints is returned by --strict when a joint could not be resolved.
var ErrInvalidJoints = errors.New("structure has invalid joints")

var (
	resolveFormat     string
	resolveOut        string
	resolveBraces     bool
	resolveThreePiece bool
	resolveStrict     bool
	resolveWatch      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve a line network and export machine lines",
	Long: `Resolve every frame of a line file and write one COMPONENT line per member.
Braces are written after the members of their frame. With --watch the input and
the configuration file are watched and the export is rewritten on every change.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "csv", "Output format: csv or detailed")
	resolveCmd.Flags().StringVarP(&resolveOut, "out", "o", "", "Output file (default stdout)")
	resolveCmd.Flags().BoolVar(&resolveBraces, "braces", false, "Synthesize braces at branch joints")
	resolveCmd.Flags().BoolVar(&resolveThreePiece, "three-piece", false, "Use three-piece braces instead of elbows")
	resolveCmd.Flags().BoolVar(&resolveStrict, "strict", false, "Fail when any joint is invalid")
	resolveCmd.Flags().BoolVarP(&resolveWatch, "watch", "w", false, "Re-resolve when the input or configuration changes")
}

func runResolve(cmd *cobra.Command, args []string) error {
	filename := args[0]

	format, err := export.ParseFormat(resolveFormat)
	if err != nil {
		return err
	}
	applyResolveFlags(cmd)

	if err := resolveOnce(filename, format); err != nil {
		return err
	}
	if !resolveWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndResolve(ctx, cmd, filename, format)
}

// applyResolveFlags lets explicitly set flags win over the configuration
func applyResolveFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("braces") {
		cfg.Braces.Enabled = resolveBraces
	}
	if cmd.Flags().Changed("three-piece") {
		cfg.Braces.ThreePiece = resolveThreePiece
		if resolveThreePiece {
			cfg.Braces.Enabled = true
		}
	}
}

func resolveOnce(filename string, format export.Format) error {
	_, frames, err := resolveFile(filename, cfg, logger)
	if err != nil {
		return err
	}

	invalid := 0
	var rows []export.Row
	for _, f := range frames {
		s := f.Structure
		invalid += len(s.InvalidJoints())

		members := s.AllMembers()
		for _, c := range analysis.CloseOperations(members, cfg.Analysis.MinOperationSpacing) {
			logger.Warn("operations too close",
				zap.String("frame", f.Name),
				zap.String("member", c.Member),
				zap.Stringer("first", c.First),
				zap.Stringer("second", c.Second))
		}

		frameRows := export.Rows(members, format)
		if len(frames) > 1 {
			for i := range frameRows {
				frameRows[i].Label = f.Name + "/" + frameRows[i].Label
			}
		}
		rows = append(rows, frameRows...)
	}

	if resolveStrict && invalid > 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJoints, invalid)
	}

	if err := writeOutput(rows); err != nil {
		return err
	}
	logger.Info("resolved",
		zap.String("file", filename),
		zap.Int("frames", len(frames)),
		zap.Int("members", len(rows)),
		zap.Int("invalid_joints", invalid))
	return nil
}

func writeOutput(rows []export.Row) error {
	if resolveOut == "" {
		return export.WriteRows(os.Stdout, rows)
	}
	return writeFile(resolveOut, rows)
}

// writeFile writes rows to path and reports a failed close when the
// write itself succeeded.
func writeFile(path string, rows []export.Row) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()
	return export.WriteRows(file, rows)
}

// watchAndResolve re-runs the export until ctx is done. Configuration
// changes are reloaded before resolving again.
func watchAndResolve(ctx context.Context, cmd *cobra.Command, filename string, format export.Format) error {
	fw, err := watcher.NewFileWatcher(cfg.DebounceDuration(), logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	input, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	files := []string{input}
	if _, err := os.Stat(configPath); err == nil {
		files = append(files, configPath)
	}

	var mu sync.Mutex
	if err := fw.Watch(files, func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		if changed != input {
			if err := reloadConfig(cmd); err != nil {
				logger.Error("configuration reload failed", zap.Error(err))
				return
			}
		}
		if err := resolveOnce(filename, format); err != nil {
			logger.Error("resolve failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	logger.Info("watching for changes", zap.Strings("files", files))
	fw.Run(ctx)
	return nil
}

func reloadConfig(cmd *cobra.Command) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	applyResolveFlags(cmd)
	return nil
}
