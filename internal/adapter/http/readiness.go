package http

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// AllReady reports ready only when every checker does. Nil checkers are
// skipped so optional components can be passed unconditionally.
func AllReady(checkers ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return readyAll(checkers)
}

type readyAll []sharedobs.ReadinessChecker

func (r readyAll) CheckReadiness(ctx context.Context) error {
	for _, c := range r {
		if c == nil {
			continue
		}
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
