package generator

import (
	"context"

	"passwordSimBackend/internal/core/domain"
)

// Generator produces a lazy, deterministic sequence of candidate plaintexts.
// A value is good for one run; build a fresh one per attack.
type Generator interface {
	Start(ctx context.Context) (<-chan string, <-chan error)
	Stop()
	Progress() float64
	Name() domain.AttackMethod
	SetParams(params domain.AttackParams)
}
