package detect

// Snapshot is the set of account IDs a subject is following at one
// observation point.
type Snapshot map[string]struct{}

// NewSnapshot builds a snapshot from a list of account IDs.
func NewSnapshot(ids []string) Snapshot {
	s := make(Snapshot, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Detect computes the symmetric difference between two following
// snapshots. A first observation (empty previous) establishes the
// baseline and reports no changes, so a cold start never produces a
// burst of spurious follow events.
//
// The caller owns the baseline: it must replace previous with current
// after every successful check, found changes or not.
func Detect(previous, current Snapshot) (followed, unfollowed []string) {
	if len(previous) == 0 {
		return nil, nil
	}

	for id := range current {
		if _, ok := previous[id]; !ok {
			followed = append(followed, id)
		}
	}
	for id := range previous {
		if _, ok := current[id]; !ok {
			unfollowed = append(unfollowed, id)
		}
	}
	return followed, unfollowed
}

// Baselines holds the per-subject following snapshots between checks.
// Mutated only by the pipeline goroutine.
type Baselines struct {
	snapshots map[string]Snapshot
}

func NewBaselines() *Baselines {
	return &Baselines{snapshots: make(map[string]Snapshot)}
}

func (b *Baselines) Get(subjectHandle string) Snapshot {
	return b.snapshots[subjectHandle]
}

// Replace swaps in the latest snapshot for a subject. Called after every
// successful check so a transient lookup failure for one changed ID is
// not reconsidered on every subsequent tick.
func (b *Baselines) Replace(subjectHandle string, current Snapshot) {
	b.snapshots[subjectHandle] = current
}
