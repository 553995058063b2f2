package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/arbor/internal/skilltree"
	"github.com/abhisek/arbor/internal/store"
)

// keepSnapshots is how many snapshots Prune retains per taxonomy.
const keepSnapshots = 20

// Session is the shared state of one exploration run: the graph, the
// current progress record, and the repo snapshots are persisted to.
// Progress values are immutable; Unlock swaps the current record for
// the one the engine returns.
//
// All methods are called from the Bubble Tea update loop, so no
// locking is needed.
type Session struct {
	graph    *skilltree.Graph
	taxonomy string
	progress skilltree.Progress
	repo     store.ProgressRepo
	logger   *zap.Logger
}

// New creates a session. repo may be nil, in which case progress is
// kept in memory only.
func New(graph *skilltree.Graph, taxonomy string, progress skilltree.Progress, repo store.ProgressRepo, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		graph:    graph,
		taxonomy: taxonomy,
		progress: progress,
		repo:     repo,
		logger:   logger,
	}
}

// Resume loads the latest persisted snapshot for a taxonomy and builds
// a session from it. A missing snapshot yields empty progress.
func Resume(ctx context.Context, graph *skilltree.Graph, taxonomy string, repo store.ProgressRepo, logger *zap.Logger) (*Session, error) {
	progress := skilltree.NewProgress()
	if repo != nil {
		snap, err := repo.Latest(ctx, taxonomy)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			progress = skilltree.NewProgress(snap.UnlockedIDs...)
		}
	}
	return New(graph, taxonomy, progress, repo, logger), nil
}

// Graph returns the skill graph.
func (s *Session) Graph() *skilltree.Graph {
	return s.graph
}

// Taxonomy returns the taxonomy name progress is stored under.
func (s *Session) Taxonomy() string {
	return s.taxonomy
}

// Progress returns the current progress record.
func (s *Session) Progress() skilltree.Progress {
	return s.progress
}

// State derives the tri-state for one node.
func (s *Session) State(id string) skilltree.NodeState {
	return skilltree.State(s.graph, id, s.progress)
}

// UnlockedCount returns how many nodes are recorded as unlocked.
func (s *Session) UnlockedCount() int {
	return s.progress.Count()
}

// TotalCount returns the number of unlockable nodes (everything but
// the root).
func (s *Session) TotalCount() int {
	return len(s.graph.Nodes()) - 1
}

// Unlock attempts to unlock a node. Returns true if progress changed;
// a node that cannot be unlocked is a no-op. On change the new record
// is persisted as a snapshot.
func (s *Session) Unlock(ctx context.Context, id string) (bool, error) {
	next := skilltree.Unlock(s.graph, id, s.progress)
	if next.Count() == s.progress.Count() {
		return false, nil
	}
	s.progress = next
	s.logger.Info("node unlocked",
		zap.String("id", id),
		zap.Int("unlocked", next.Count()))

	if s.repo == nil {
		return true, nil
	}
	snap := &store.ProgressSnapshot{
		Taxonomy:    s.taxonomy,
		Timestamp:   time.Now(),
		UnlockedIDs: next.IDs(),
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return true, err
	}
	if err := s.repo.Prune(ctx, s.taxonomy, keepSnapshots); err != nil {
		s.logger.Warn("snapshot prune failed", zap.Error(err))
	}
	return true, nil
}

// Reset clears all progress, in memory and in the store.
func (s *Session) Reset(ctx context.Context) error {
	s.progress = skilltree.NewProgress()
	if s.repo == nil {
		return nil
	}
	return s.repo.Reset(ctx, s.taxonomy)
}
