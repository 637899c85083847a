package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errMissingCodec is returned when preflight rejects the input
var errMissingCodec = errors.New("ffmpeg cannot decode this video")

func newCheckCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check INPUT",
		Short: "Check that ffmpeg can decode a video without converting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, logger, err := newChecker(root)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cyan := color.New(color.FgHiCyan).SprintFunc()
			fmt.Printf("%s %s\n", cyan("ffmpeg:"), checker.FFmpegPath())
			if ffprobe := checker.Tools().FFprobe; ffprobe != "" {
				fmt.Printf("%s %s\n", cyan("ffprobe:"), ffprobe)
			} else {
				fmt.Printf("%s not found, probing with ffmpeg -i\n", cyan("ffprobe:"))
			}

			decoders, err := checker.Decoders(ctx)
			if err != nil {
				return fmt.Errorf("failed to list decoders: %w", err)
			}
			fmt.Printf("%s %d\n", cyan("Decoders:"), len(decoders))

			result := checker.Run(ctx, args[0])
			codec := result.Info.Codec
			if codec == "" {
				codec = "unknown"
			}
			fmt.Printf("%s %s\n", cyan("Codec:"), codec)
			if result.Info.Duration > 0 {
				fmt.Printf("%s %.1fs\n", cyan("Duration:"), result.Info.Duration)
			}
			if len(result.DecoderArgs) > 0 {
				fmt.Printf("%s %v\n", cyan("Decoder args:"), result.DecoderArgs)
			}

			if !result.OK {
				color.New(color.FgYellow).Println(result.Message)
				return errMissingCodec
			}
			color.New(color.FgHiGreen, color.Bold).Println("✅ ffmpeg can decode this video")
			return nil
		},
	}
}
