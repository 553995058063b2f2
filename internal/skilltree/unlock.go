package skilltree

import (
	"sort"
)

// Progress is an immutable record of unlocked node IDs. Every unlock
// operation returns a new record; the zero value is an empty record.
// Membership is set-based so prerequisite checks stay O(1) as the
// taxonomy grows.
type Progress struct {
	unlocked map[string]struct{}
}

// NewProgress builds a record from a list of unlocked IDs.
func NewProgress(ids ...string) Progress {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Progress{unlocked: m}
}

// Contains reports whether id is in the record. The root node is handled
// separately by IsUnlocked; this is raw set membership.
func (p Progress) Contains(id string) bool {
	_, ok := p.unlocked[id]
	return ok
}

// Count returns the number of recorded IDs.
func (p Progress) Count() int {
	return len(p.unlocked)
}

// IDs returns the recorded IDs, sorted for determinism.
func (p Progress) IDs() []string {
	out := make([]string, 0, len(p.unlocked))
	for id := range p.unlocked {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// with returns a copy of p with id added.
func (p Progress) with(id string) Progress {
	m := make(map[string]struct{}, len(p.unlocked)+1)
	for k := range p.unlocked {
		m[k] = struct{}{}
	}
	m[id] = struct{}{}
	return Progress{unlocked: m}
}

// IsUnlocked reports whether a node is unlocked. The root is always
// unlocked; it anchors the graph before any progress exists.
func IsUnlocked(g *Graph, id string, p Progress) bool {
	if id == g.RootID() {
		return true
	}
	return p.Contains(id)
}

// CanUnlock reports whether a node's prerequisites are satisfied and it
// has not yet been activated. Pure function of structure and progress:
//   - already unlocked → false (states are mutually exclusive)
//   - module → its owning domain must be unlocked
//   - domain → first domain, or at least one module of the immediately
//     preceding domain unlocked
func CanUnlock(g *Graph, id string, p Progress) bool {
	n, ok := g.Node(id)
	if !ok {
		return false
	}
	if IsUnlocked(g, id, p) {
		return false
	}

	switch n.Level {
	case LevelModule:
		return IsUnlocked(g, n.GroupID, p)
	case LevelDomain:
		idx := g.DomainIndex(id)
		if idx == 0 {
			return true
		}
		prev := g.Domains()[idx-1]
		for _, m := range g.Modules(prev.ID) {
			if p.Contains(m.ID) {
				return true
			}
		}
		return false
	default:
		// The root never transitions; it starts unlocked.
		return false
	}
}

// Unlock applies an unlock action and returns the resulting record.
// A node that fails CanUnlock is a benign no-op: the input record is
// returned unchanged, making the operation idempotent.
//
// Unlocking the root cascades: every node in the graph becomes unlocked
// at once. This mirrors observed behavior in the original tree and is
// deliberately not "fixed" to be progressive.
func Unlock(g *Graph, id string, p Progress) Progress {
	if id == g.RootID() {
		return unlockAll(g, p)
	}
	if !CanUnlock(g, id, p) {
		return p
	}
	return p.with(id)
}

func unlockAll(g *Graph, p Progress) Progress {
	nodes := g.Nodes()

	missing := false
	for _, n := range nodes {
		if !p.Contains(n.ID) {
			missing = true
			break
		}
	}
	if !missing {
		return p
	}

	m := make(map[string]struct{}, len(nodes))
	for k := range p.unlocked {
		m[k] = struct{}{}
	}
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return Progress{unlocked: m}
}

// State derives the tri-state for one node.
func State(g *Graph, id string, p Progress) NodeState {
	if IsUnlocked(g, id, p) {
		return StateUnlocked
	}
	if CanUnlock(g, id, p) {
		return StateUnlockable
	}
	return StateLocked
}
