// Package forcesim computes stable 2D positions for the visible skill
// subgraph with a frame-driven force-directed relaxation: seeded ring
// placement, pinned structural nodes, additive forces, alpha decay, and
// an overlap diagnostic.
package forcesim

// Config tunes the simulation. Zero values are replaced by DefaultConfig
// values in New, so callers can override selectively.
type Config struct {
	// Alpha is the starting energy; the simulation is settled once the
	// decayed value drops below AlphaMin or MaxSteps elapses.
	Alpha      float64
	AlphaMin   float64
	AlphaDecay float64 // fraction of alpha lost per step

	// VelocityDamping is the retained velocity fraction per step.
	VelocityDamping float64
	MaxVelocity     float64

	// CenterStrength pulls the layout toward the canvas center.
	CenterStrength float64

	// LinkFraction sets the target link separation as a fraction of
	// min(width,height); LinkStrength is the Hooke coefficient.
	LinkFraction float64
	LinkStrength float64

	// Many-body repulsion. Root nodes repel RootRepelFactor times
	// stronger; pairs farther apart than RepelCutoffFraction·min(w,h)
	// do not interact, bounding cost and spread.
	RepelStrength      float64
	RootRepelFactor    float64
	RepelCutoffFraction float64

	// Collision: per-level exclusion radii (root, domain, module) with
	// the domain radius largest, resolved iteratively each step.
	// Unlockable nodes get GlowPadding extra radius for their highlight
	// ring.
	CollideRadii      [3]float64
	CollideIterations int
	GlowPadding       float64

	// RadialStrength pulls each node toward its level's ring.
	// RingFractions are per-level ring radii as fractions of the
	// inscribed radius min(width,height)/2, so rings always fit the
	// canvas.
	RadialStrength float64
	RingFractions  [3]float64

	// MaxSteps is the cooldown budget: the simulation stops after this
	// many steps even if alpha has not decayed below AlphaMin.
	MaxSteps int
}

// DefaultConfig returns the tuning used by the interactive tree and the
// exporter.
func DefaultConfig() Config {
	return Config{
		Alpha:      1.0,
		AlphaMin:   0.001,
		AlphaDecay: 0.0228, // ~300 steps from 1.0 to AlphaMin

		VelocityDamping: 0.6,
		MaxVelocity:     12,

		CenterStrength: 0.04,

		LinkFraction: 0.25,
		LinkStrength: 0.08,

		RepelStrength:       1200,
		RootRepelFactor:     3,
		RepelCutoffFraction: 0.5,

		CollideRadii:      [3]float64{28, 36, 24},
		CollideIterations: 2,
		GlowPadding:       4,

		RadialStrength: 0.06,
		RingFractions:  [3]float64{0.10, 0.35, 0.60},

		MaxSteps: 300,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Alpha == 0 {
		c.Alpha = def.Alpha
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = def.AlphaMin
	}
	if c.AlphaDecay == 0 {
		c.AlphaDecay = def.AlphaDecay
	}
	if c.VelocityDamping == 0 {
		c.VelocityDamping = def.VelocityDamping
	}
	if c.MaxVelocity == 0 {
		c.MaxVelocity = def.MaxVelocity
	}
	if c.CenterStrength == 0 {
		c.CenterStrength = def.CenterStrength
	}
	if c.LinkFraction == 0 {
		c.LinkFraction = def.LinkFraction
	}
	if c.LinkStrength == 0 {
		c.LinkStrength = def.LinkStrength
	}
	if c.RepelStrength == 0 {
		c.RepelStrength = def.RepelStrength
	}
	if c.RootRepelFactor == 0 {
		c.RootRepelFactor = def.RootRepelFactor
	}
	if c.RepelCutoffFraction == 0 {
		c.RepelCutoffFraction = def.RepelCutoffFraction
	}
	if c.CollideRadii == [3]float64{} {
		c.CollideRadii = def.CollideRadii
	}
	if c.CollideIterations == 0 {
		c.CollideIterations = def.CollideIterations
	}
	if c.GlowPadding == 0 {
		c.GlowPadding = def.GlowPadding
	}
	if c.RadialStrength == 0 {
		c.RadialStrength = def.RadialStrength
	}
	if c.RingFractions == [3]float64{} {
		c.RingFractions = def.RingFractions
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = def.MaxSteps
	}
	return c
}
