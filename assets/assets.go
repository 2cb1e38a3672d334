package assets

import "embed"

// AssetsFS holds the stylesheet and scripts served under /assets/.
// Run "go run ./cmd/do gen" to rebuild css/output.css.
//
//go:embed css/output.css js
var AssetsFS embed.FS
