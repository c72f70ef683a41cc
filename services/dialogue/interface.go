package dialogue

import (
	"context"

	"reservo/models"
)

// Engine maps one user turn onto the next conversation step and the agent's
// reply. Implementations must always produce a result for recognized and
// unrecognized input alike; the only error paths are infrastructure
// failures (session store unreachable).
type Engine interface {
	Transition(ctx context.Context, req models.TransitionRequest) (*models.TransitionResult, error)
}
