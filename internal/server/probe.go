package server

import (
	"context"

	"github.com/preston-bernstein/free-games-service/internal/probe"
)

// Probe defines the minimal readiness-probe behavior needed by the server.
type Probe interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() probe.Status
}
