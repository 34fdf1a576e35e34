package internal

import (
	"context"
	"time"
)

// FreshnessState describes a remote's cache freshness
type FreshnessState string

const (
	FreshnessUnsynced FreshnessState = "unsynced"
	FreshnessFresh    FreshnessState = "fresh"
	FreshnessStale    FreshnessState = "stale"
)

// Coordinator decides when a remote's cache is stale and runs the
// fetch-reconcile-commit cycle against it. Failures leave the cache as
// is; commands proceed against whatever is cached.
type Coordinator struct {
	store   *Store
	clients *ClientFactory
	cfg     *Config
	now     func() time.Time
}

// NewCoordinator creates a sync coordinator
func NewCoordinator(store *Store, clients *ClientFactory, cfg *Config) *Coordinator {
	return &Coordinator{
		store:   store,
		clients: clients,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Freshness classifies a remote's cache age against the stale threshold
func (c *Coordinator) Freshness(r Remote) FreshnessState {
	if r.LastSynced == nil {
		return FreshnessUnsynced
	}
	if c.now().Sub(*r.LastSynced) >= c.cfg.StaleThreshold {
		return FreshnessStale
	}
	return FreshnessFresh
}

// CheckAndAutoSync reconciles a remote's cache if it is stale. It
// returns false without touching the network when sync is disabled, the
// remote is unknown, or the cache is still fresh. A nil LastSynced is
// infinitely stale. The age comparison is inclusive: a cache exactly at
// the threshold is stale.
func (c *Coordinator) CheckAndAutoSync(ctx context.Context, remoteID string) (bool, error) {
	if !c.cfg.SyncEnabled {
		return false, nil
	}
	remote, ok := c.store.Remote(remoteID)
	if !ok {
		return false, nil
	}
	if c.Freshness(remote) == FreshnessFresh {
		return false, nil
	}
	return true, c.Sync(ctx, remoteID)
}

// Sync performs a full reconciliation of one remote regardless of
// staleness: fetch the complete context and workspace lists, upsert
// every fetched record, and drop every cached entry for that remote
// missing from the fetch. A network failure on one resource kind does
// not abort the other; success on at least one kind advances
// LastSynced.
func (c *Coordinator) Sync(ctx context.Context, remoteID string) error {
	if _, ok := c.store.Remote(remoteID); !ok {
		return &RemoteNotFoundError{RemoteID: remoteID}
	}
	client, err := c.clients.Client(remoteID)
	if err != nil {
		return err
	}

	syncedAt := c.now()
	synced := 0
	var firstErr error

	if contexts, err := client.ListContexts(ctx); err != nil {
		LogDebug("Context sync for %s failed: %v", remoteID, err)
		firstErr = err
	} else if err := c.store.ReconcileContexts(remoteID, contexts, syncedAt); err != nil {
		firstErr = err
	} else {
		synced++
	}

	if workspaces, err := client.ListWorkspaces(ctx); err != nil {
		LogDebug("Workspace sync for %s failed: %v", remoteID, err)
		if firstErr == nil {
			firstErr = err
		}
	} else if err := c.store.ReconcileWorkspaces(remoteID, workspaces, syncedAt); err != nil {
		if firstErr == nil {
			firstErr = err
		}
	} else {
		synced++
	}

	if synced == 0 {
		return firstErr
	}
	if firstErr != nil {
		LogWarn("Partial sync of %s: %v", remoteID, firstErr)
	}
	return c.store.MarkSynced(remoteID, syncedAt)
}

// IsRemoteReachable probes a remote's health endpoint so callers can
// short-circuit sync attempts against a known-down remote
func (c *Coordinator) IsRemoteReachable(ctx context.Context, remoteID string) bool {
	client, err := c.clients.Client(remoteID)
	if err != nil {
		return false
	}
	if err := client.Ping(ctx); err != nil {
		LogDebug("Ping %s: %v", remoteID, err)
		return false
	}
	return true
}
