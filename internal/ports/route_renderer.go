package ports

import (
	"io"
	"running-route-service/internal/domain"
)

// Displays or exports a synthesized route. Renderers never influence the search.
type RouteRenderer interface {
	ContentType() string
	Render(w io.Writer, res *domain.SynthesisResult) error
}
