package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/noop" // headless backend
	"github.com/spf13/cobra"

	"github.com/gogpu/frameview"
	"github.com/gogpu/frameview/loop"
	"github.com/gogpu/frameview/source"
)

type runConfig struct {
	image     string
	pattern   string
	frameSize frameview.Size
	maxDim    uint32
	viewport  frameview.Size
	frames    int
	resizes   []frameview.Size
	spirv     bool
	format    string
}

type runReport struct {
	Viewport      string          `yaml:"viewport"`
	Frame         string          `yaml:"frame"`
	State         string          `yaml:"state"`
	SurfaceFormat string          `yaml:"surface_format"`
	Context       frameview.Stats `yaml:"context"`
	Loop          loop.Stats      `yaml:"loop"`
}

func newRunCmd() *cobra.Command {
	cfg := runConfig{
		frameSize: frameview.Size{Width: 320, Height: 240},
		viewport:  frameview.Size{Width: 800, Height: 600},
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw frames into a headless context and print its counters",
		Long: `Draw frames from an image or a generated pattern into a frame context on
the no-op backend. Resizes are spread evenly across the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runHeadless(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), cfg.format, report, report.writeText)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.image, "image", "", "image file to show (png, jpeg, gif, bmp, tiff, webp)")
	f.StringVar(&cfg.pattern, "pattern", "checker", "generated pattern when no --image: checker or gradient")
	f.Var(sizeValue{&cfg.frameSize}, "frame-size", "size of generated frames")
	f.Uint32Var(&cfg.maxDim, "max-dim", 0, "downscale images larger than this")
	f.Var(sizeValue{&cfg.viewport}, "viewport", "initial drawable size")
	f.IntVar(&cfg.frames, "frames", 1, "number of redraws")
	f.Var(sizeList{&cfg.resizes}, "resize", "drawable size to switch to during the run; repeatable")
	f.BoolVar(&cfg.spirv, "spirv", false, "compile the shader to SPIR-V")
	f.StringVar(&cfg.format, "format", formatText, "output format: text or yaml")
	return cmd
}

func openSource(cfg runConfig) (frameview.Source, error) {
	if cfg.image != "" {
		return source.Open(cfg.image, source.WithMaxDimension(cfg.maxDim))
	}
	switch cfg.pattern {
	case "checker":
		return source.NewCheckerboard(cfg.frameSize, 16,
			color.NRGBA{R: 40, G: 40, B: 40, A: 255},
			color.NRGBA{R: 220, G: 220, B: 220, A: 255}).Animate(true), nil
	case "gradient":
		return source.NewGradient(cfg.frameSize).Animate(true), nil
	default:
		return nil, fmt.Errorf("unknown pattern %q", cfg.pattern)
	}
}

// runEvents spreads resizes evenly between redraws and ends with Close.
func runEvents(frames int, resizes []frameview.Size) []loop.Event {
	events := make([]loop.Event, 0, frames+len(resizes)+1)
	next := 0
	for i := 0; i < frames; i++ {
		for next < len(resizes) && (next+1)*frames <= i*(len(resizes)+1) {
			events = append(events, loop.Resize{Size: resizes[next]})
			next++
		}
		events = append(events, loop.Redraw{})
	}
	for ; next < len(resizes); next++ {
		events = append(events, loop.Resize{Size: resizes[next]})
	}
	return append(events, loop.Close{})
}

func runHeadless(ctx context.Context, cfg runConfig) (*runReport, error) {
	if cfg.frames < 0 {
		return nil, errors.New("--frames must not be negative")
	}
	src, err := openSource(cfg)
	if err != nil {
		return nil, err
	}

	opts := []frameview.Option{frameview.WithBackend(gputypes.BackendEmpty), frameview.WithLabel("framefit")}
	if cfg.spirv {
		opts = append(opts, frameview.WithSPIRV())
	}
	fc, err := frameview.New(frameview.SurfaceHandle{}, cfg.viewport, opts...)
	if err != nil {
		return nil, err
	}
	defer fc.Destroy()

	events := runEvents(cfg.frames, cfg.resizes)
	ch := make(chan loop.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)

	if ctx == nil {
		ctx = context.Background()
	}
	d := &loop.Driver{Context: fc, Source: src}
	if err := d.Run(ctx, ch); err != nil {
		return nil, err
	}

	report := &runReport{
		Viewport:      fc.Size().String(),
		State:         fc.State().String(),
		SurfaceFormat: fc.SurfaceFormat().String(),
		Context:       fc.Stats(),
		Loop:          d.Stats(),
	}
	if fs, ok := fc.FrameSize(); ok {
		report.Frame = fs.String()
	}
	return report, nil
}

func (r *runReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"viewport %s, frame %s, state %s, surface %s\n"+
			"draws %d, uploads %d, empty pulls %d, rejected %d\n"+
			"resource builds %d, vertex writes %d, surface configures %d\n"+
			"resizes %d, redraws %d, reconfigures %d, skipped %d\n",
		r.Viewport, r.Frame, r.State, r.SurfaceFormat,
		r.Context.Draws, r.Context.Uploads, r.Context.EmptyPulls, r.Context.RejectedFrames,
		r.Context.ResourceBuilds, r.Context.VertexWrites, r.Context.SurfaceConfigures,
		r.Loop.Resizes, r.Loop.Redraws, r.Loop.Reconfigures, r.Loop.Skipped)
	return err
}
