package internal

import (
	"context"
	"testing"
	"time"

	"github.com/hubgrid/hubctl/testutil"
)

func testCoordinator(t *testing.T, s *Store, cfg *Config) *Coordinator {
	t.Helper()
	if cfg == nil {
		cfg = &Config{
			SyncEnabled:    true,
			StaleThreshold: 15 * time.Minute,
			HTTPTimeout:    time.Second,
		}
	}
	return NewCoordinator(s, NewClientFactory(s, cfg.HTTPTimeout), cfg)
}

func saveFixtureRemote(t *testing.T, s *Store, id, url string, lastSynced *time.Time) {
	t.Helper()
	r := Remote{ID: id, URL: url, APIBase: "/api", LastSynced: lastSynced}
	if err := s.SaveRemote(r); err != nil {
		t.Fatalf("SaveRemote() error = %v", err)
	}
}

func TestCoordinator_StalenessBoundary(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		age        time.Duration
		wantSynced bool
	}{
		{"exactly at threshold", 15 * time.Minute, true},
		{"one second under", 15*time.Minute - time.Second, false},
		{"well past threshold", time.Hour, true},
		{"just synced", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := &testutil.RemoteFixture{
				Contexts: []map[string]interface{}{{"id": "ctxA"}},
			}
			srv := testutil.StartRemote(t, fx)

			s := testStore(t)
			lastSynced := now.Add(-tt.age)
			saveFixtureRemote(t, s, "alice@srv", srv.URL, &lastSynced)

			c := testCoordinator(t, s, nil)
			c.now = func() time.Time { return now }

			synced, err := c.CheckAndAutoSync(context.Background(), "alice@srv")
			if err != nil {
				t.Fatalf("CheckAndAutoSync() error = %v", err)
			}
			if synced != tt.wantSynced {
				t.Errorf("CheckAndAutoSync() = %v, want %v", synced, tt.wantSynced)
			}
		})
	}
}

func TestCoordinator_NilLastSyncedIsInfinitelyStale(t *testing.T) {
	fx := &testutil.RemoteFixture{
		Contexts: []map[string]interface{}{{"id": "ctxA"}},
	}
	srv := testutil.StartRemote(t, fx)

	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", srv.URL, nil)

	c := testCoordinator(t, s, nil)
	synced, err := c.CheckAndAutoSync(context.Background(), "alice@srv")
	if err != nil {
		t.Fatalf("CheckAndAutoSync() error = %v", err)
	}
	if !synced {
		t.Error("unsynced remote did not trigger a sync")
	}

	got, _ := s.Remote("alice@srv")
	if got.LastSynced == nil {
		t.Error("LastSynced not recorded after successful sync")
	}
}

func TestCoordinator_DisabledSyncIsNoOp(t *testing.T) {
	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", "http://127.0.0.1:1", nil)

	cfg := &Config{SyncEnabled: false, StaleThreshold: 15 * time.Minute, HTTPTimeout: time.Second}
	c := testCoordinator(t, s, cfg)

	synced, err := c.CheckAndAutoSync(context.Background(), "alice@srv")
	if err != nil {
		t.Fatalf("CheckAndAutoSync() error = %v", err)
	}
	if synced {
		t.Error("sync ran while disabled")
	}
}

func TestCoordinator_UnknownRemoteIsNoOp(t *testing.T) {
	c := testCoordinator(t, testStore(t), nil)

	synced, err := c.CheckAndAutoSync(context.Background(), "ghost@gone")
	if err != nil {
		t.Fatalf("CheckAndAutoSync() error = %v", err)
	}
	if synced {
		t.Error("sync ran for an unknown remote")
	}
}

func TestCoordinator_ReconciliationDeletesOrphans(t *testing.T) {
	fx := &testutil.RemoteFixture{
		Contexts: []map[string]interface{}{{"id": "ctxB"}},
	}
	srv := testutil.StartRemote(t, fx)

	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", srv.URL, nil)
	seed := time.Now().Add(-time.Hour)
	if err := s.ReconcileContexts("alice@srv", []CachedContext{{ID: "ctxA"}, {ID: "ctxB"}}, seed); err != nil {
		t.Fatalf("seeding error = %v", err)
	}
	if err := s.UpsertContext("bob@other", CachedContext{ID: "ctxA"}); err != nil {
		t.Fatalf("UpsertContext() error = %v", err)
	}

	c := testCoordinator(t, s, nil)
	if err := c.Sync(context.Background(), "alice@srv"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	contexts := s.Contexts()
	if _, ok := contexts["alice@srv:ctxA"]; ok {
		t.Error("server-deleted ctxA still cached after sync")
	}
	if _, ok := contexts["alice@srv:ctxB"]; !ok {
		t.Error("ctxB missing after sync")
	}
	if _, ok := contexts["bob@other:ctxA"]; !ok {
		t.Error("sync touched another remote's cache entries")
	}
}

func TestCoordinator_PartialFailureStillAdvancesLastSynced(t *testing.T) {
	fx := &testutil.RemoteFixture{
		Contexts:       []map[string]interface{}{{"id": "ctxA"}},
		FailWorkspaces: true,
	}
	srv := testutil.StartRemote(t, fx)

	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", srv.URL, nil)
	// Stale workspace entry survives the failed kind's reconciliation
	if err := s.ReconcileWorkspaces("alice@srv", []CachedWorkspace{{ID: "wsOld"}}, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("seeding error = %v", err)
	}

	c := testCoordinator(t, s, nil)
	if err := c.Sync(context.Background(), "alice@srv"); err != nil {
		t.Fatalf("Sync() with one failed kind error = %v", err)
	}

	got, _ := s.Remote("alice@srv")
	if got.LastSynced == nil {
		t.Error("partial success did not advance LastSynced")
	}
	if _, ok := s.Workspaces()["alice@srv:wsOld"]; !ok {
		t.Error("failed workspace fetch wiped the existing workspace cache")
	}
	if _, ok := s.Contexts()["alice@srv:ctxA"]; !ok {
		t.Error("context reconciliation did not run despite workspace failure")
	}
}

func TestCoordinator_TotalFailureLeavesCacheAlone(t *testing.T) {
	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", "http://127.0.0.1:1", nil)
	seed := time.Now().Add(-time.Hour)
	if err := s.ReconcileContexts("alice@srv", []CachedContext{{ID: "ctxA"}}, seed); err != nil {
		t.Fatalf("seeding error = %v", err)
	}

	cfg := &Config{SyncEnabled: true, StaleThreshold: 15 * time.Minute, HTTPTimeout: 200 * time.Millisecond}
	c := testCoordinator(t, s, cfg)

	if err := c.Sync(context.Background(), "alice@srv"); err == nil {
		t.Fatal("Sync() against a dead remote succeeded")
	}

	got, _ := s.Remote("alice@srv")
	if got.LastSynced != nil {
		t.Error("LastSynced advanced despite total failure")
	}
	if _, ok := s.Contexts()["alice@srv:ctxA"]; !ok {
		t.Error("failed sync evicted cached entries")
	}
}

func TestCoordinator_SyncUnknownRemote(t *testing.T) {
	c := testCoordinator(t, testStore(t), nil)
	if err := c.Sync(context.Background(), "ghost@gone"); err == nil {
		t.Error("Sync() succeeded for an unknown remote")
	}
}

func TestCoordinator_Freshness(t *testing.T) {
	now := time.Now()
	c := testCoordinator(t, testStore(t), nil)
	c.now = func() time.Time { return now }

	if got := c.Freshness(Remote{}); got != FreshnessUnsynced {
		t.Errorf("Freshness(nil LastSynced) = %q, want %q", got, FreshnessUnsynced)
	}
	recent := now.Add(-time.Minute)
	if got := c.Freshness(Remote{LastSynced: &recent}); got != FreshnessFresh {
		t.Errorf("Freshness(1m old) = %q, want %q", got, FreshnessFresh)
	}
	old := now.Add(-16 * time.Minute)
	if got := c.Freshness(Remote{LastSynced: &old}); got != FreshnessStale {
		t.Errorf("Freshness(16m old) = %q, want %q", got, FreshnessStale)
	}
}

func TestCoordinator_IsRemoteReachable(t *testing.T) {
	fx := &testutil.RemoteFixture{}
	srv := testutil.StartRemote(t, fx)

	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", srv.URL, nil)
	saveFixtureRemote(t, s, "bob@down", "http://127.0.0.1:1", nil)

	cfg := &Config{SyncEnabled: true, StaleThreshold: 15 * time.Minute, HTTPTimeout: 200 * time.Millisecond}
	c := testCoordinator(t, s, cfg)

	if !c.IsRemoteReachable(context.Background(), "alice@srv") {
		t.Error("live remote reported unreachable")
	}
	if c.IsRemoteReachable(context.Background(), "bob@down") {
		t.Error("dead remote reported reachable")
	}
	if c.IsRemoteReachable(context.Background(), "ghost@gone") {
		t.Error("unknown remote reported reachable")
	}
}

// Orphaned cache entries whose remote was deleted must be ignored, not
// fatal, during sync of other remotes.
func TestCoordinator_ToleratesOrphanedEntries(t *testing.T) {
	fx := &testutil.RemoteFixture{
		Contexts: []map[string]interface{}{{"id": "ctxA"}},
	}
	srv := testutil.StartRemote(t, fx)

	s := testStore(t)
	saveFixtureRemote(t, s, "alice@srv", srv.URL, nil)
	// Entry for a remote that is not in the remote map
	if err := s.UpsertContext("ghost@gone", CachedContext{ID: "ctxZ"}); err != nil {
		t.Fatalf("UpsertContext() error = %v", err)
	}

	c := testCoordinator(t, s, nil)
	if err := c.Sync(context.Background(), "alice@srv"); err != nil {
		t.Fatalf("Sync() with orphaned entries present error = %v", err)
	}
	if _, ok := s.Contexts()["ghost@gone:ctxZ"]; !ok {
		t.Error("sync of alice@srv removed an orphaned entry it does not own")
	}
}
