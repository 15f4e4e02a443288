package static

import "embed"

// FS exposes dashboard static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
