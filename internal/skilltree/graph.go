package skilltree

import (
	"slices"

	"github.com/abhisek/arbor/internal/taxonomy"
)

// Link weights. Domain links are heavier so the layout keeps domains
// closer to the root than modules are to their domains.
const (
	rootLinkWeight   = 2.0
	moduleLinkWeight = 1.0
)

// Graph holds the node/edge set with precomputed indices. Built once per
// taxonomy load; read-only for the session.
type Graph struct {
	nodes           []SkillNode
	links           []SkillLink
	byID            map[string]*SkillNode
	rootID          string
	domainIDs       []string // taxonomy order
	domainIndex     map[string]int
	modulesByDomain map[string][]string
	parent          map[string]string // child → parent node ID
}

// Build constructs the graph from a taxonomy: root (level 0) → domains
// (level 1) → modules (level 2). Deterministic: node order follows
// taxonomy order, module group IDs are their owning domain. Malformed
// entries are defaulted, never rejected.
func Build(tax taxonomy.Taxonomy) *Graph {
	g := &Graph{
		byID:            make(map[string]*SkillNode),
		domainIndex:     make(map[string]int),
		modulesByDomain: make(map[string][]string),
		parent:          make(map[string]string),
	}

	g.rootID = "root"
	g.nodes = append(g.nodes, SkillNode{
		ID:          g.rootID,
		Name:        tax.Name,
		Description: tax.Description,
		Level:       LevelRoot,
		GroupID:     g.rootID,
		Points:      normalizePoints(nil),
	})

	for i, d := range tax.Domains {
		g.nodes = append(g.nodes, SkillNode{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Level:       LevelDomain,
			GroupID:     d.ID,
			Points:      normalizePoints(nil),
		})
		g.links = append(g.links, SkillLink{SourceID: g.rootID, TargetID: d.ID, Weight: rootLinkWeight})
		g.domainIDs = append(g.domainIDs, d.ID)
		g.domainIndex[d.ID] = i
		g.parent[d.ID] = g.rootID

		for _, m := range d.Modules {
			g.nodes = append(g.nodes, SkillNode{
				ID:          m.ID,
				Name:        m.Title,
				Description: m.Description,
				Level:       LevelModule,
				GroupID:     d.ID,
				Points:      normalizePoints(m.Points),
			})
			g.links = append(g.links, SkillLink{SourceID: d.ID, TargetID: m.ID, Weight: moduleLinkWeight})
			g.modulesByDomain[d.ID] = append(g.modulesByDomain[d.ID], m.ID)
			g.parent[m.ID] = d.ID
		}
	}

	for i := range g.nodes {
		g.byID[g.nodes[i].ID] = &g.nodes[i]
	}
	return g
}

// RootID returns the entry node's ID.
func (g *Graph) RootID() string {
	return g.rootID
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (SkillNode, bool) {
	n, ok := g.byID[id]
	if !ok {
		return SkillNode{}, false
	}
	return *n, true
}

// Nodes returns all nodes in build order.
func (g *Graph) Nodes() []SkillNode {
	return slices.Clone(g.nodes)
}

// Links returns all structural links in build order.
func (g *Graph) Links() []SkillLink {
	return slices.Clone(g.links)
}

// Domains returns the domain nodes in taxonomy order.
func (g *Graph) Domains() []SkillNode {
	out := make([]SkillNode, 0, len(g.domainIDs))
	for _, id := range g.domainIDs {
		out = append(out, *g.byID[id])
	}
	return out
}

// Modules returns a domain's module nodes in taxonomy order.
func (g *Graph) Modules(domainID string) []SkillNode {
	ids := g.modulesByDomain[domainID]
	out := make([]SkillNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, *g.byID[id])
	}
	return out
}

// DomainIndex returns the ordinal position of a domain, or -1.
func (g *Graph) DomainIndex(domainID string) int {
	idx, ok := g.domainIndex[domainID]
	if !ok {
		return -1
	}
	return idx
}

// ParentID returns the structural parent of a node ("" for the root).
func (g *Graph) ParentID(id string) string {
	return g.parent[id]
}

// VisibleNodes returns the subgraph disclosed for a progress record:
// every unlocked node, the root (always shown; it anchors the graph),
// and the frontier — nodes whose parent is unlocked. Frontier nodes are
// the ones a user can see locked/unlockable styling on.
func (g *Graph) VisibleNodes(p Progress) []SkillNode {
	var out []SkillNode
	for i := range g.nodes {
		n := &g.nodes[i]
		if g.isVisible(n.ID, p) {
			out = append(out, *n)
		}
	}
	return out
}

func (g *Graph) isVisible(id string, p Progress) bool {
	if id == g.rootID {
		return true
	}
	if IsUnlocked(g, id, p) {
		return true
	}
	parent := g.parent[id]
	return parent != "" && IsUnlocked(g, parent, p)
}

// VisibleLinks returns links whose both endpoints are in the visible set.
func (g *Graph) VisibleLinks(visible []SkillNode) []SkillLink {
	in := make(map[string]bool, len(visible))
	for _, n := range visible {
		in[n.ID] = true
	}
	var out []SkillLink
	for _, l := range g.links {
		if in[l.SourceID] && in[l.TargetID] {
			out = append(out, l)
		}
	}
	return out
}

// States derives the tri-state for every node in nodes against p.
func (g *Graph) States(nodes []SkillNode, p Progress) map[string]NodeState {
	out := make(map[string]NodeState, len(nodes))
	for _, n := range nodes {
		out[n.ID] = State(g, n.ID, p)
	}
	return out
}
