// Package preflight checks, before a conversion starts, that the installed
// ffmpeg can decode the input video. It locates the tools, probes the input
// codec, inspects the decoder list and runs a short decode test, and turns
// failures into distribution-specific install instructions.
package preflight
