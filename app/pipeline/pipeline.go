package pipeline

import (
	"context"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/dedup"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/render"
)

// Deps bundles the publishing machinery every variant shares: dedup
// memory, renderer, budget gate, publisher and the posts store.
type Deps struct {
	Memory    *dedup.Memory
	Renderer  *render.Renderer
	Gate      *publish.Gate
	Publisher publish.Publisher
	Posts     database.PostRepository
}

// sleepCtx pauses for d or until the context is cancelled, whichever
// comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
