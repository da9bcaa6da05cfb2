package interfaces

import (
	"context"

	domaintypes "qshield/internal/domain/types"
)

// Simulator stands in for the federation backend.
type Simulator interface {
	Call(ctx context.Context, req domaintypes.Request) (domaintypes.Response, error)
}
