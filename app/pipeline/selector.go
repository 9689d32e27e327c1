package pipeline

import (
	"math/rand"
	"sort"

	"github.com/erdmkk/football-gossip-bot/app/content"
)

// DefaultTopK bounds the slice of top-ranked candidates the selector
// samples from. Pure top-1 selection repeats itself across runs when
// several items tie at the maximum; sampling within the top tier keeps
// quality while adding variety.
const DefaultTopK = 15

// Select picks at most one candidate to publish. Candidates below the
// threshold are dropped; with no budget remaining nothing is selected.
// The remaining candidates are ranked by score descending with input
// order preserved on ties, and one is chosen uniformly at random from
// the top K.
func Select(candidates []content.ScoredCandidate, threshold, budgetRemaining, topK int, rng *rand.Rand) *content.ScoredCandidate {
	if budgetRemaining <= 0 {
		return nil
	}

	eligible := make([]content.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= threshold {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})

	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(eligible) > topK {
		eligible = eligible[:topK]
	}

	chosen := eligible[rng.Intn(len(eligible))]
	return &chosen
}
