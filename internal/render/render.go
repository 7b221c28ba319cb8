package render

import "github.com/joseph-ayodele/docaudit/internal/entity"

// Renderer turns a built report into presentation bytes. Renderers run
// strictly after report construction; a renderer failing never
// invalidates the report it was handed.
type Renderer interface {
	Render(rep entity.Report) ([]byte, error)
}
