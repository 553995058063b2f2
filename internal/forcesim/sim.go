package forcesim

import (
	"math"

	"go.uber.org/zap"

	"github.com/abhisek/arbor/internal/skilltree"
)

// Vec is an immutable 2D position.
type Vec struct {
	X, Y float64
}

// Node is the simulation's view of a visible skill node.
type Node struct {
	ID    string
	Level skilltree.Level
	State skilltree.NodeState
}

// Link connects two simulated nodes; weight scales attraction.
type Link struct {
	SourceID string
	TargetID string
	Weight   float64
}

// Input is the visible subgraph plus canvas dimensions for one session.
type Input struct {
	Nodes  []Node
	Links  []Link
	Width  float64
	Height float64
	Logger *zap.Logger // optional; used by the overlap diagnostic
}

// simNode is internal per-node simulation state. Positions live here, not
// on shared skill nodes; callers read them via Positions.
type simNode struct {
	id     string
	level  skilltree.Level
	state  skilltree.NodeState
	x, y   float64
	vx, vy float64
	fx, fy float64
	pinned bool
}

type simLink struct {
	source, target *simNode
	weight         float64
}

// Simulation relaxes the visible subgraph toward a stable layout, one
// Step per animation frame. It is single-session state: any change to
// the visible set or canvas dimensions requires a fresh Simulation.
type Simulation struct {
	cfg           Config
	width, height float64
	nodes         []*simNode
	byID          map[string]*simNode
	links         []simLink
	alpha         float64
	steps         int
	logger        *zap.Logger

	linkDistance float64
	repelCutoff  float64
}

// New builds a simulation with seeded ring placement. Root and domain
// nodes (levels 0-1) are pinned to preserve global structure; modules
// remain free. Seeding is deterministic: the i-th of N nodes on a ring
// sits at angle i/N·2π.
func New(cfg Config, in Input) *Simulation {
	cfg = cfg.withDefaults()

	logger := in.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	minDim := math.Min(in.Width, in.Height)
	s := &Simulation{
		cfg:          cfg,
		width:        in.Width,
		height:       in.Height,
		byID:         make(map[string]*simNode, len(in.Nodes)),
		alpha:        cfg.Alpha,
		logger:       logger,
		linkDistance: cfg.LinkFraction * minDim,
		repelCutoff:  cfg.RepelCutoffFraction * minDim,
	}

	for _, n := range in.Nodes {
		sn := &simNode{
			id:     n.ID,
			level:  n.Level,
			state:  n.State,
			pinned: n.Level <= skilltree.LevelDomain,
		}
		s.nodes = append(s.nodes, sn)
		s.byID[n.ID] = sn
	}
	s.seed()

	for _, l := range in.Links {
		src, ok := s.byID[l.SourceID]
		if !ok {
			continue
		}
		dst, ok := s.byID[l.TargetID]
		if !ok {
			continue
		}
		w := l.Weight
		if w <= 0 {
			w = 1
		}
		s.links = append(s.links, simLink{source: src, target: dst, weight: w})
	}

	return s
}

// seed places nodes on concentric per-level rings around the canvas
// center. Ring radius is the level's fraction of the inscribed radius.
func (s *Simulation) seed() {
	cx, cy := s.width/2, s.height/2
	inscribed := math.Min(s.width, s.height) / 2

	perLevel := make(map[skilltree.Level][]*simNode)
	for _, n := range s.nodes {
		perLevel[n.level] = append(perLevel[n.level], n)
	}

	for level, group := range perLevel {
		r := s.cfg.RingFractions[levelIndex(level)] * inscribed
		count := float64(len(group))
		for i, n := range group {
			angle := float64(i) / count * 2 * math.Pi
			n.x = cx + r*math.Cos(angle)
			n.y = cy + r*math.Sin(angle)
		}
	}
}

// ringRadius returns the level's target ring radius in canvas units.
func (s *Simulation) ringRadius(level skilltree.Level) float64 {
	inscribed := math.Min(s.width, s.height) / 2
	return s.cfg.RingFractions[levelIndex(level)] * inscribed
}

func levelIndex(l skilltree.Level) int {
	if l < 0 || l > skilltree.LevelModule {
		return int(skilltree.LevelModule)
	}
	return int(l)
}

// Alpha returns the current energy term.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Steps returns the number of steps taken so far.
func (s *Simulation) Steps() int {
	return s.steps
}

// Settled reports whether the simulation should stop ticking: alpha has
// decayed below the minimum, or the cooldown step budget is spent.
func (s *Simulation) Settled() bool {
	return s.alpha < s.cfg.AlphaMin || s.steps >= s.cfg.MaxSteps
}

// Positions returns a fresh id→position map for the current state.
// Callers own the copy; the simulation never hands out internal state.
func (s *Simulation) Positions() map[string]Vec {
	out := make(map[string]Vec, len(s.nodes))
	for _, n := range s.nodes {
		out[n.id] = Vec{X: n.x, Y: n.y}
	}
	return out
}

// Step advances the relaxation by one frame: accumulate forces, integrate
// free nodes, resolve collisions, decay alpha. Whole-step updates only;
// there is no partial state to corrupt on cancellation.
func (s *Simulation) Step() {
	if s.Settled() {
		return
	}

	for _, n := range s.nodes {
		n.fx, n.fy = 0, 0
	}

	s.applyCenter()
	s.applyLinks()
	s.applyRepulsion()
	s.applyRadial()

	for _, n := range s.nodes {
		if n.pinned {
			continue
		}
		n.vx = (n.vx + n.fx*s.alpha) * s.cfg.VelocityDamping
		n.vy = (n.vy + n.fy*s.alpha) * s.cfg.VelocityDamping

		vel := math.Hypot(n.vx, n.vy)
		if vel > s.cfg.MaxVelocity {
			n.vx = n.vx / vel * s.cfg.MaxVelocity
			n.vy = n.vy / vel * s.cfg.MaxVelocity
		}

		n.x += n.vx
		n.y += n.vy
	}

	for i := 0; i < s.cfg.CollideIterations; i++ {
		s.resolveCollisions()
	}

	s.alpha += (0 - s.alpha) * s.cfg.AlphaDecay
	s.steps++
}

// Run advances until settled. Used by the exporter; the interactive view
// steps frame by frame instead.
func (s *Simulation) Run() {
	for !s.Settled() {
		s.Step()
	}
	if overlaps := s.OverlapReport(); len(overlaps) > 0 {
		s.logger.Warn("layout settled with residual overlaps",
			zap.Int("pairs", len(overlaps)),
			zap.Int("steps", s.steps),
			zap.Float64("alpha", s.alpha))
	}
}

// applyCenter pulls every node toward the canvas center.
func (s *Simulation) applyCenter() {
	cx, cy := s.width/2, s.height/2
	for _, n := range s.nodes {
		n.fx += (cx - n.x) * s.cfg.CenterStrength
		n.fy += (cy - n.y) * s.cfg.CenterStrength
	}
}

// applyLinks pulls linked pairs toward the target separation (Hooke).
// Pinned endpoints absorb no displacement; the free endpoint takes the
// full correction.
func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		dx := l.target.x - l.source.x
		dy := l.target.y - l.source.y
		dist := math.Hypot(dx, dy)
		if dist < 1 {
			dist = 1
		}

		displacement := dist - s.linkDistance
		f := s.cfg.LinkStrength * l.weight * displacement
		ux, uy := dx/dist, dy/dist

		switch {
		case l.source.pinned && l.target.pinned:
			// nothing to move
		case l.source.pinned:
			l.target.fx -= f * ux
			l.target.fy -= f * uy
		case l.target.pinned:
			l.source.fx += f * ux
			l.source.fy += f * uy
		default:
			l.source.fx += f * ux / 2
			l.source.fy += f * uy / 2
			l.target.fx -= f * ux / 2
			l.target.fy -= f * uy / 2
		}
	}
}

// applyRepulsion pushes all pairs apart (many-body), stronger for the
// root node, and only within the cutoff distance.
func (s *Simulation) applyRepulsion() {
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]

			dx := a.x - b.x
			dy := a.y - b.y
			dist := math.Hypot(dx, dy)
			if dist > s.repelCutoff {
				continue
			}
			if dist < 1 {
				// Coincident nodes get a deterministic nudge apart.
				dist = 1
				dx, dy = 1, 0
			}

			strength := s.cfg.RepelStrength
			if a.level == skilltree.LevelRoot || b.level == skilltree.LevelRoot {
				strength *= s.cfg.RootRepelFactor
			}

			f := strength / (dist * dist)
			ux, uy := dx/dist, dy/dist
			a.fx += f * ux
			a.fy += f * uy
			b.fx -= f * ux
			b.fy -= f * uy
		}
	}
}

// applyRadial pulls each node toward its level's ring so levels do not
// visually merge.
func (s *Simulation) applyRadial() {
	cx, cy := s.width/2, s.height/2
	for _, n := range s.nodes {
		dx := n.x - cx
		dy := n.y - cy
		r := math.Hypot(dx, dy)
		if r < 1 {
			r = 1
			dx = 1
		}
		target := s.ringRadius(n.level)
		f := (target - r) * s.cfg.RadialStrength
		n.fx += f * dx / r
		n.fy += f * dy / r
	}
}

// collideRadius is the node's exclusion radius; unlockable nodes reserve
// extra space for their highlight ring.
func (s *Simulation) collideRadius(n *simNode) float64 {
	r := s.cfg.CollideRadii[levelIndex(n.level)]
	if n.state == skilltree.StateUnlockable {
		r += s.cfg.GlowPadding
	}
	return r
}

// resolveCollisions separates overlapping pairs by direct position
// correction. Free nodes split the overlap; against a pinned node the
// free node absorbs all of it. Two pinned nodes cannot be separated —
// those pairs surface in the overlap diagnostic instead.
func (s *Simulation) resolveCollisions() {
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]
			if a.pinned && b.pinned {
				continue
			}

			minDist := s.collideRadius(a) + s.collideRadius(b)
			dx := a.x - b.x
			dy := a.y - b.y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist < 1 {
				dist = 1
				dx, dy = 1, 0
			}

			overlap := minDist - dist
			ux, uy := dx/dist, dy/dist

			switch {
			case a.pinned:
				b.x -= overlap * ux
				b.y -= overlap * uy
			case b.pinned:
				a.x += overlap * ux
				a.y += overlap * uy
			default:
				a.x += overlap / 2 * ux
				a.y += overlap / 2 * uy
				b.x -= overlap / 2 * ux
				b.y -= overlap / 2 * uy
			}
		}
	}
}
