package form

import "slices"

// ledger is the dirty-field set: fields currently eligible to display their
// errors. It only ever grows via markDirty and empties via clear — there is
// deliberately no per-field removal, matching the touched-field lifecycle.
type ledger struct {
	dirty map[string]struct{}
}

func newLedger() *ledger {
	return &ledger{dirty: make(map[string]struct{})}
}

func (l *ledger) markDirty(field string) {
	l.dirty[field] = struct{}{}
}

func (l *ledger) has(field string) bool {
	_, ok := l.dirty[field]
	return ok
}

func (l *ledger) clear() {
	clear(l.dirty)
}

func (l *ledger) empty() bool {
	return len(l.dirty) == 0
}

// fields returns a sorted copy of the dirty set.
func (l *ledger) fields() []string {
	out := make([]string, 0, len(l.dirty))
	for f := range l.dirty {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
