package session

import (
	"context"
	"testing"

	"github.com/abhisek/arbor/internal/skilltree"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/taxonomy"
)

func testGraph(t *testing.T) *skilltree.Graph {
	t.Helper()
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("load default taxonomy: %v", err)
	}
	return skilltree.Build(tax)
}

func testRepo(t *testing.T) store.ProgressRepo {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.ProgressRepo()
}

func TestUnlockPersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	repo := testRepo(t)
	s := New(g, "default", skilltree.NewProgress(), repo, nil)

	firstDomain := g.Domains()[0].ID
	changed, err := s.Unlock(ctx, firstDomain)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !changed {
		t.Fatal("expected first domain unlock to change progress")
	}

	snap, err := repo.Latest(ctx, "default")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a persisted snapshot")
	}
	if len(snap.UnlockedIDs) != 1 || snap.UnlockedIDs[0] != firstDomain {
		t.Errorf("snapshot IDs = %v, want [%s]", snap.UnlockedIDs, firstDomain)
	}
}

func TestUnlockNoopDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	repo := testRepo(t)
	s := New(g, "default", skilltree.NewProgress(), repo, nil)

	// A module whose domain is locked cannot be unlocked.
	locked := g.Modules(g.Domains()[0].ID)[0].ID
	changed, err := s.Unlock(ctx, locked)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if changed {
		t.Error("expected locked module unlock to be a no-op")
	}

	snap, err := repo.Latest(ctx, "default")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Error("no-op unlock should not persist a snapshot")
	}
}

func TestResumeRestoresProgress(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	repo := testRepo(t)

	s1 := New(g, "default", skilltree.NewProgress(), repo, nil)
	firstDomain := g.Domains()[0].ID
	if _, err := s1.Unlock(ctx, firstDomain); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	s2, err := Resume(ctx, g, "default", repo, nil)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !s2.Progress().Contains(firstDomain) {
		t.Error("resumed session should contain the unlocked domain")
	}
	if s2.UnlockedCount() != 1 {
		t.Errorf("resumed count = %d, want 1", s2.UnlockedCount())
	}
}

func TestResumeWithoutSnapshot(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	repo := testRepo(t)

	s, err := Resume(ctx, g, "default", repo, nil)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if s.UnlockedCount() != 0 {
		t.Errorf("fresh session count = %d, want 0", s.UnlockedCount())
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	repo := testRepo(t)
	s := New(g, "default", skilltree.NewProgress(), repo, nil)

	if _, err := s.Unlock(ctx, g.Domains()[0].ID); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.UnlockedCount() != 0 {
		t.Errorf("count after reset = %d, want 0", s.UnlockedCount())
	}

	snap, err := repo.Latest(ctx, "default")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Error("reset should delete persisted snapshots")
	}
}

func TestTotalCountExcludesRoot(t *testing.T) {
	g := testGraph(t)
	s := New(g, "default", skilltree.NewProgress(), nil, nil)
	if s.TotalCount() != len(g.Nodes())-1 {
		t.Errorf("TotalCount = %d, want %d", s.TotalCount(), len(g.Nodes())-1)
	}
}

func TestNilRepoKeepsProgressInMemory(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	s := New(g, "default", skilltree.NewProgress(), nil, nil)

	changed, err := s.Unlock(ctx, g.Domains()[0].ID)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !changed {
		t.Error("expected unlock to change progress")
	}
	if s.UnlockedCount() != 1 {
		t.Errorf("count = %d, want 1", s.UnlockedCount())
	}
}
