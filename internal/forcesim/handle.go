package forcesim

// Handle is the caller-visible lifecycle of a running simulation. A view
// session owns exactly one; starting a replacement simulation must Stop
// the old handle first so no recurring frame callback leaks.
type Handle struct {
	sim     *Simulation
	stopped bool
}

// Start returns a handle that drives the simulation frame by frame.
func (s *Simulation) Start() *Handle {
	return &Handle{sim: s}
}

// Step advances one frame and reports whether the simulation is still
// live. Once stopped or settled it returns false and does nothing.
func (h *Handle) Step() bool {
	if h.stopped || h.sim.Settled() {
		return false
	}
	h.sim.Step()
	return !h.stopped && !h.sim.Settled()
}

// Stop halts the simulation permanently. Idempotent.
func (h *Handle) Stop() {
	h.stopped = true
}

// Running reports whether the handle will still advance on Step.
func (h *Handle) Running() bool {
	return !h.stopped && !h.sim.Settled()
}

// Positions exposes the owned simulation's current positions.
func (h *Handle) Positions() map[string]Vec {
	return h.sim.Positions()
}

// Sim returns the underlying simulation for diagnostics.
func (h *Handle) Sim() *Simulation {
	return h.sim
}
