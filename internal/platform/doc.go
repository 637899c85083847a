package platform

// Package platform contains OS integration: filesystem helpers, reveal/open in
// the desktop shell, Linux distribution detection and media file sniffing.
