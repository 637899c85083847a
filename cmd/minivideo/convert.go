package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/munchie/minivideo/internal/convert"
	"github.com/munchie/minivideo/internal/model"
	"github.com/munchie/minivideo/internal/platform"
)

// errConversionFailed is returned after the failure has been reported
var errConversionFailed = errors.New("conversion failed")

type convertFlags struct {
	output      string
	format      string
	width       int
	fps         int
	speed       float64
	quality     int
	noLoop      bool
	interpolate bool
	noProgress  bool
}

func newConvertCmd(root *rootFlags) *cobra.Command {
	defaults := model.DefaultOptions()
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Convert a video file to an animation",
		Long: `Convert a video file to an animated WebP, GIF or APNG.
The video is sped up, scaled to the given width and resampled to the given
frame rate. The output defaults to the input name with the format extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args[0])
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), root, opts, !flags.noProgress)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", defaults.Format.String(), "Output format: webp, gif or apng")
	cmd.Flags().IntVarP(&flags.width, "width", "w", defaults.WidthPx, fmt.Sprintf("Output width in pixels (%d-%d)", model.MinWidthPx, model.MaxWidthPx))
	cmd.Flags().IntVar(&flags.fps, "fps", defaults.FPS, fmt.Sprintf("Frames per second (%d-%d)", model.MinFPS, model.MaxFPS))
	cmd.Flags().Float64VarP(&flags.speed, "speed", "s", defaults.Speed, fmt.Sprintf("Speed-up factor (%g-%g)", model.MinSpeed, model.MaxSpeed))
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", defaults.Quality, "WebP quality (0-100)")
	cmd.Flags().BoolVar(&flags.noLoop, "no-loop", !defaults.Loop, "Play the animation once")
	cmd.Flags().BoolVar(&flags.interpolate, "interpolate", defaults.Interpolate, "Blend frames with motion interpolation (slow)")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable progress bar")
	return cmd
}

// options turns the flags into conversion options for input
func (f *convertFlags) options(input string) (model.ConversionOptions, error) {
	format, err := model.ParseOutputFormat(f.format)
	if err != nil {
		return model.ConversionOptions{}, err
	}
	output := f.output
	if output == "" {
		output = platform.SuggestOutputPath(input, format.Extension())
	}
	return model.ConversionOptions{
		InputPath:   input,
		OutputPath:  output,
		Format:      format,
		WidthPx:     f.width,
		FPS:         f.fps,
		Speed:       f.speed,
		Quality:     f.quality,
		Loop:        !f.noLoop,
		Interpolate: f.interpolate,
	}, nil
}

// runConvert drives the conversion service until the task finishes
func runConvert(ctx context.Context, root *rootFlags, opts model.ConversionOptions, showProgress bool) error {
	checker, logger, err := newChecker(root)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if ctx == nil {
		ctx = context.Background()
	}

	out := newConsole(showProgress)
	service := convert.NewService(checker, logger.Named("convert"))
	service.SetLogCallback(func(_, line string) { out.line(line) })
	service.SetUpdateCallback(out.update)

	task, err := service.StartConversion(opts)
	if err != nil {
		return err
	}

	// Ctrl-C stops ffmpeg and removes the partial output
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-signals:
			_ = service.StopConversion(task.ID)
		case <-ctx.Done():
			_ = service.StopConversion(task.ID)
		case <-done:
		}
	}()

	service.Wait()
	out.finish()

	final, ok := service.GetTask(task.ID)
	if !ok {
		return fmt.Errorf("task %s disappeared", task.ID)
	}
	logger.Debug("conversion finished",
		zap.String("task_id", final.ID),
		zap.String("status", final.Status.String()),
		zap.Duration("elapsed", final.Elapsed()))

	switch final.Status {
	case model.TaskStatusCompleted:
		color.New(color.FgHiGreen, color.Bold).Printf("✅ %s created in %.1fs\n", final.Options.OutputPath, final.Elapsed().Seconds())
		return nil
	case model.TaskStatusStopped:
		color.New(color.FgYellow).Println("Conversion stopped")
		return errConversionFailed
	}
	if final.LastError != "" {
		color.New(color.FgHiRed).Fprintln(os.Stderr, final.LastError)
	}
	return errConversionFailed
}

// console serializes service output with the progress bar
type console struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newConsole(showProgress bool) *console {
	c := &console{}
	if showProgress {
		c.bar = progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Converting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "▐",
				BarEnd:        "▌",
			}),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowElapsedTimeOnFinish(),
		)
	}
	return c
}

func (c *console) line(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		_ = c.bar.Clear()
	}
	fmt.Println(text)
	if c.bar != nil {
		_ = c.bar.RenderBlank()
	}
}

func (c *console) update(task *model.ConversionTask) {
	if c.bar == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if task.StepCount > 1 {
		c.bar.Describe(fmt.Sprintf("%s %d/%d", task.Step, task.StepIndex+1, task.StepCount))
	}
	_ = c.bar.Set(task.Percent)
}

func (c *console) finish() {
	if c.bar == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.bar.Close()
}
