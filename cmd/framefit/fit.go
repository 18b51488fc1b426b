package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/frameview"
	"github.com/gogpu/frameview/internal/quad"
	"github.com/gogpu/frameview/internal/viewport"
)

type fitResult struct {
	Frame    string       `yaml:"frame"`
	Viewport string       `yaml:"viewport"`
	Axis     string       `yaml:"axis"`
	Margin   float32      `yaml:"margin"`
	Corners  [][2]float32 `yaml:"corners,flow"`
}

func newFitCmd() *cobra.Command {
	var (
		frame     frameview.Size
		viewports []frameview.Size
		format    string
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Print the margin and quad corners for a frame in each viewport",
		Long: `Print how a frame of the given size is letterboxed into each viewport.

Corners are normalized device coordinates in the order top-left,
top-right, bottom-left, bottom-right.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if frame.Empty() {
				return errors.New("--frame must have a non-zero width and height")
			}
			if len(viewports) == 0 {
				return errors.New("at least one --viewport is required")
			}
			results := make([]fitResult, 0, len(viewports))
			for _, vp := range viewports {
				if vp.Empty() {
					return fmt.Errorf("viewport %s has zero area", vp)
				}
				results = append(results, computeFit(frame, vp))
			}
			return writeResult(cmd.OutOrStdout(), format, results, func(w io.Writer) error {
				for _, r := range results {
					if _, err := fmt.Fprintf(w, "%s in %s: %s(%g) corners %v\n",
						r.Frame, r.Viewport, r.Axis, r.Margin, r.Corners); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().Var(sizeValue{&frame}, "frame", "frame size or aspect (800x600, 4:3)")
	cmd.Flags().Var(sizeList{&viewports}, "viewport", "viewport size; repeatable")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or yaml")
	_ = cmd.MarkFlagRequired("frame")
	return cmd
}

func computeFit(frame, vp frameview.Size) fitResult {
	m := viewport.Fit(frame.Aspect(), vp.Aspect())
	verts := quad.Build(frame.Width, frame.Height, vp.Width, vp.Height)
	corners := make([][2]float32, len(verts))
	for i, v := range verts {
		corners[i] = v.Position
	}
	return fitResult{
		Frame:    frame.String(),
		Viewport: vp.String(),
		Axis:     m.Axis.String(),
		Margin:   m.Value,
		Corners:  corners,
	}
}
