package static

import "embed"

//go:embed app.css app.js
var FS embed.FS
