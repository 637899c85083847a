// Package convert runs conversions: it validates options, runs the preflight
// check, builds the ffmpeg plan and executes its steps in order while
// streaming tool output and progress to the caller.
package convert
