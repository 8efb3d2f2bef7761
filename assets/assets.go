// Package assets embeds the static files served under /assets.
package assets

import "embed"

//go:embed static
var Assets embed.FS
