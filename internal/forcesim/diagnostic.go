package forcesim

import (
	"math"

	"go.uber.org/zap"
)

// Overlap records a node pair closer than the sum of their exclusion
// radii. Diagnostic only: reported for monitoring and tests, never fed
// back into the layout.
type Overlap struct {
	A, B        string
	Distance    float64
	MinDistance float64
}

// overlapTolerance ignores sub-pixel violations from float accumulation.
const overlapTolerance = 0.5

// OverlapReport compares all pairwise distances against per-pair minimum
// spacing and returns the pairs still too close. Pair order follows node
// input order.
func (s *Simulation) OverlapReport() []Overlap {
	var out []Overlap
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]
			minDist := s.collideRadius(a) + s.collideRadius(b)
			dist := math.Hypot(a.x-b.x, a.y-b.y)
			if dist < minDist-overlapTolerance {
				out = append(out, Overlap{
					A:           a.id,
					B:           b.id,
					Distance:    dist,
					MinDistance: minDist,
				})
			}
		}
	}

	for _, o := range out {
		s.logger.Debug("node overlap",
			zap.String("a", o.A),
			zap.String("b", o.B),
			zap.Float64("distance", o.Distance),
			zap.Float64("min_distance", o.MinDistance))
	}
	return out
}

// MinSpacing returns the required center distance for a node pair, the
// same threshold OverlapReport checks.
func (s *Simulation) MinSpacing(idA, idB string) float64 {
	a, okA := s.byID[idA]
	b, okB := s.byID[idB]
	if !okA || !okB {
		return 0
	}
	return s.collideRadius(a) + s.collideRadius(b)
}
