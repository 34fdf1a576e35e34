package cmd

import (
	"strings"
	"testing"

	"github.com/hubgrid/hubctl/internal"
	"github.com/hubgrid/hubctl/testutil"
)

func TestSyncCommand_SingleRemote(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	srv := testutil.StartRemote(t, &testutil.RemoteFixture{
		Contexts: []map[string]interface{}{
			{"id": "ctxA", "name": "Alpha"},
		},
		Workspaces: []map[string]interface{}{
			{"id": "ws1", "name": "Main"},
		},
	})

	store := internal.NewStore(dir)
	if err := store.SaveRemote(internal.Remote{ID: "alice@srv", URL: srv.URL, APIBase: "/api"}); err != nil {
		t.Fatalf("SaveRemote() error = %v", err)
	}

	out, err := execute(t, "--data-dir", dir, "sync", "alice@srv")
	if err != nil {
		t.Fatalf("sync error = %v", err)
	}
	if !strings.Contains(out, "1 contexts, 1 workspaces") {
		t.Errorf("sync output = %q", out)
	}

	if _, ok := store.Contexts()["alice@srv:ctxA"]; !ok {
		t.Error("sync did not cache the fetched context")
	}
	r, _ := store.Remote("alice@srv")
	if r.LastSynced == nil {
		t.Error("sync did not record LastSynced")
	}
}

func TestSyncCommand_AllRemotesWithOneDown(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	srv := testutil.StartRemote(t, &testutil.RemoteFixture{
		Contexts: []map[string]interface{}{{"id": "ctxA"}},
	})

	store := internal.NewStore(dir)
	if err := store.SaveRemote(internal.Remote{ID: "alice@srv", URL: srv.URL, APIBase: "/api"}); err != nil {
		t.Fatalf("SaveRemote() error = %v", err)
	}
	if err := store.SaveRemote(internal.Remote{ID: "bob@down", URL: "http://127.0.0.1:1", APIBase: "/api"}); err != nil {
		t.Fatalf("SaveRemote() error = %v", err)
	}

	// One remote down is not a command failure
	out, err := execute(t, "--data-dir", dir, "sync")
	if err != nil {
		t.Fatalf("sync error = %v", err)
	}
	if !strings.Contains(out, "✓ alice@srv") || !strings.Contains(out, "✗ bob@down") {
		t.Errorf("sync output = %q", out)
	}
}

func TestSyncCommand_NoRemotes(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	out, err := execute(t, "--data-dir", dir, "sync")
	if err != nil {
		t.Fatalf("sync error = %v", err)
	}
	if !strings.Contains(out, "nothing to sync") {
		t.Errorf("sync output = %q", out)
	}
}
