package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/wgpu/hal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/frameview"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "framefit",
		Short: "Letterbox geometry and headless frame rendering",
		Long: `framefit computes how a frame is fitted into a viewport and drives a
frame context on the no-op GPU backend.

Examples:
  framefit fit --frame 800x600 --viewport 1920x1080
  framefit fit --frame 4:3 --viewport 1080x1920 --format yaml
  framefit run --pattern checker --frame-size 320x240 --viewport 800x600 --frames 10`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if !verbose {
				return
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			frameview.SetLogger(logger)
			hal.SetLogger(logger)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log context and HAL activity to stderr")

	root.AddCommand(newFitCmd(), newRunCmd())
	return root
}

// writeResult prints v as YAML or through the text formatter.
func writeResult(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case formatText:
		return text(w)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatYAML)
	}
}
