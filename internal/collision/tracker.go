// Package collision detects batch inputs that would be written to the same output file.
package collision

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/arloliu/mam/errs"
)

// Tracker records which input claimed each output path during a run.
//
// Directory mode flattens a tree into one output directory, so two inputs with the
// same base name in different subdirectories map to the same target. The first input
// to claim a target keeps it.
//
// Thread Safety: Tracker is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	owners     map[string]string // target -> input
	targets    []string          // claim order
	collisions int
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		owners:  make(map[string]string),
		targets: make([]string, 0),
	}
}

// Claim records input as the producer of target.
//
// Returns error if:
//   - target is empty
//   - target was already claimed by a different input (wraps errs.ErrOutputCollision)
//
// Claiming the same target again for the same input is allowed.
func (t *Tracker) Claim(target, input string) error {
	if target == "" {
		return fmt.Errorf("empty output path for %s", input)
	}

	target = filepath.Clean(target)
	input = filepath.Clean(input)

	t.mu.Lock()
	defer t.mu.Unlock()

	if owner, exists := t.owners[target]; exists {
		if owner == input {
			return nil
		}
		t.collisions++

		return fmt.Errorf("%w: %s is written from %s", errs.ErrOutputCollision, filepath.Base(target), owner)
	}

	t.owners[target] = input
	t.targets = append(t.targets, target)

	return nil
}

// Owner returns the input that claimed target.
func (t *Tracker) Owner(target string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	owner, ok := t.owners[filepath.Clean(target)]

	return owner, ok
}

// HasCollision returns true if any claim was refused.
func (t *Tracker) HasCollision() bool {
	return t.Collisions() > 0
}

// Collisions returns the number of refused claims.
func (t *Tracker) Collisions() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.collisions
}

// Targets returns the claimed targets in claim order.
func (t *Tracker) Targets() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.targets))
	copy(out, t.targets)

	return out
}

// Count returns the number of claimed targets.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.targets)
}

// Reset clears all claims and the collision count.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.owners)
	t.targets = t.targets[:0]
	t.collisions = 0
}
