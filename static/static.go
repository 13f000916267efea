// Package static embeds the landing page served at "/".
package static

import "embed"

//go:embed index.html
var Files embed.FS
