// Package ffmpeg builds the ffmpeg command lines for one conversion: the
// shared filter chain (speed, frame rate or motion interpolation, scaling)
// and the per-format step plans (single-pass WebP/APNG, two-pass GIF with a
// generated palette). It never runs anything; see the convert package.
package ffmpeg
