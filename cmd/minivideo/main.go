// Command minivideo converts videos to small animations from the terminal.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/munchie/minivideo/internal/logging"
	"github.com/munchie/minivideo/internal/preflight"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// rootFlags are shared by every subcommand
type rootFlags struct {
	ffmpegPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "minivideo",
		Short:         "Convert videos to small animated WebP, GIF or APNG files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.ffmpegPath, "ffmpeg", "", "ffmpeg executable (default: search PATH)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newConvertCmd(flags), newCheckCmd(flags))
	return cmd
}

// newChecker builds the logger and the preflight checker for a subcommand
func newChecker(flags *rootFlags) (*preflight.Checker, *zap.Logger, error) {
	logger, err := logging.New(flags.verbose)
	if err != nil {
		return nil, nil, err
	}
	tools, err := preflight.Locate(flags.ffmpegPath)
	if err != nil {
		return nil, logger, err
	}
	logger.Debug("using ffmpeg", zap.String("ffmpeg", tools.FFmpeg), zap.String("ffprobe", tools.FFprobe))
	return preflight.New(tools, logger.Named("preflight")), logger, nil
}
