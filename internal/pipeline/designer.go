// internal/pipeline/designer.go
package pipeline

import (
	"context"

	"degen/internal/service"
)

// Designer is the minimal capability the pipeline needs.
// *service.Designer and fakes in tests satisfy it.
type Designer interface {
	Design(ctx context.Context, req service.Request) (service.Design, error)
}
