// Package skilltree builds the skill graph from a taxonomy and derives
// per-node unlock state from an immutable progress record.
package skilltree

// Level is a node's depth in the tree.
type Level int

const (
	LevelRoot   Level = iota // the single entry node
	LevelDomain              // a competency area
	LevelModule              // a learnable unit inside a domain
)

// PointDimensions are the five tracked skill-point dimensions, in display order.
var PointDimensions = [5]string{"insight", "rigor", "craft", "scope", "synthesis"}

// Points maps each of the five dimensions to a value. Normalized: every
// dimension is present, missing taxonomy entries default to zero.
type Points map[string]float64

// normalizePoints fills in all five dimensions, defaulting absent or
// malformed values to zero. Unknown dimensions are dropped.
func normalizePoints(raw map[string]float64) Points {
	p := make(Points, len(PointDimensions))
	for _, dim := range PointDimensions {
		v := raw[dim]
		if v < 0 {
			v = 0
		}
		p[dim] = v
	}
	return p
}

// Total sums all dimensions.
func (p Points) Total() float64 {
	var t float64
	for _, dim := range PointDimensions {
		t += p[dim]
	}
	return t
}

// SkillNode is a taxonomy entry in the graph. Structural data only:
// unlock flags are derived per query and positions are owned by the
// layout simulation, never written here.
type SkillNode struct {
	ID          string
	Name        string
	Description string
	Level       Level
	GroupID     string // owning domain for modules; own ID for root and domains
	Points      Points
}

// SkillLink is a structural edge, directed source→target for layout
// purposes (root→domain, domain→module) and rendered undirected.
type SkillLink struct {
	SourceID string
	TargetID string
	Weight   float64
}

// NodeState is a node's derived tri-state relative to a progress record.
type NodeState int

const (
	StateLocked     NodeState = iota // prerequisites not yet satisfied
	StateUnlockable                  // prerequisites satisfied, not yet activated
	StateUnlocked                    // activated (terminal)
)

// Icon returns the display glyph for a state.
func (s NodeState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateUnlockable:
		return "🔓"
	case StateUnlocked:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a state.
func (s NodeState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateUnlockable:
		return "Unlockable"
	case StateUnlocked:
		return "Unlocked"
	default:
		return "Unknown"
	}
}
