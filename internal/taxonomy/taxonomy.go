// Package taxonomy defines the skill taxonomy consumed by the tree builder:
// a versioned set of domains, each containing modules with optional
// per-dimension skill points.
package taxonomy

// Module is a single learnable unit inside a domain.
type Module struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Points      map[string]float64 `json:"points,omitempty"`
}

// Domain groups related modules. Domain order in the slice is the
// progression order used for unlock gating.
type Domain struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Modules     []Module `json:"modules"`
}

// Taxonomy is the full tree content: a named root plus ordered domains.
type Taxonomy struct {
	Version     string   `json:"version"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Domains     []Domain `json:"domains"`
}
