// Package keytrack detects duplicate section keys within the body of
// a single section, for decode targets that need errs.ErrDuplicateKey
// instead of section.Section's default last-wins behavior.
package keytrack

import (
	"fmt"

	"github.com/jeffro256/epee/errs"
)

// Tracker records the keys seen so far in one section body. It is
// scoped to the lifetime of a single Decoder frame; callers create one
// per BeginSection call and discard it at the matching EndSection.
type Tracker struct {
	seen map[string]struct{}
}

// New returns a Tracker sized for a section declaring n fields.
func New(n int) *Tracker {
	if n < 0 {
		n = 0
	}

	return &Tracker{seen: make(map[string]struct{}, n)}
}

// See records key, returning errs.ErrDuplicateKey if it was already
// recorded by an earlier call on this Tracker.
func (t *Tracker) See(key string) error {
	if _, ok := t.seen[key]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
	}

	t.seen[key] = struct{}{}

	return nil
}
