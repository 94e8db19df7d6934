package bulletin

import "github.com/shanehull/bultentakip/internal/types"

// FindNew returns the bulletins in current whose URL does not appear in previous,
// in current's order. An empty previous means nothing has been seen yet, so all
// of current is new.
func FindNew(current, previous types.Snapshot) types.Snapshot {
	if len(previous) == 0 {
		out := make(types.Snapshot, len(current))
		copy(out, current)
		return out
	}

	seen := previous.URLSet()

	var fresh types.Snapshot
	for _, b := range current {
		if _, ok := seen[b.URL]; !ok {
			fresh = append(fresh, b)
		}
	}
	return fresh
}
