// Where: assets/templates_embed.go
// What: Embed resource templates for the staging renderer.
package assets

import "embed"

//go:embed templates/*.tmpl
var TemplatesFS embed.FS

// Templates exposes the embedded template files.
func Templates() embed.FS { return TemplatesFS }
