package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Store file names, one JSON document per record family. The four map
// families hold one object keyed by identifier; session.json holds a
// single Session object.
const (
	remotesFile    = "remotes.json"
	contextsFile   = "contexts.json"
	workspacesFile = "workspaces.json"
	aliasesFile    = "aliases.json"
	sessionFile    = "session.json"
)

// Store provides durable CRUD over the record families. Every write is
// read-merge-write: the full map is re-read under an advisory file lock
// immediately before the merge runs, then committed atomically via a
// temp file and rename. This keeps concurrent CLI invocations from
// losing each other's updates on the shared files.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created
// lazily on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDataDir returns the standard data directory, ~/.hubctl
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hubctl"), nil
}

// Dir returns the store's root directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// EnsureDir creates the data directory with owner-only permissions
func (s *Store) EnsureDir() error {
	return os.MkdirAll(s.dir, 0700)
}

// loadMap reads a map family from disk. A missing or unparseable file
// is an empty map, never an error: first run and corruption both
// degrade gracefully and the next write repairs the file.
func loadMap[T any](path string) map[string]T {
	m := map[string]T{}
	data, err := os.ReadFile(path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(data, &m); err != nil {
		LogDebug("Treating unparseable %s as empty: %v", filepath.Base(path), err)
		return map[string]T{}
	}
	if m == nil {
		return map[string]T{}
	}
	return m
}

// writeAtomic commits v to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial write
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &CacheCorruptionError{Path: path, Op: "encode", Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &CacheCorruptionError{Path: path, Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &CacheCorruptionError{Path: path, Op: "write", Err: err}
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &CacheCorruptionError{Path: path, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &CacheCorruptionError{Path: path, Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &CacheCorruptionError{Path: path, Op: "rename", Err: err}
	}
	return nil
}

// mutateMap runs fn against the latest on-disk state of one map family
// and commits the result. The flock spans the whole read-merge-write
// cycle; fn must not do network I/O.
func mutateMap[T any](s *Store, name string, fn func(map[string]T) error) error {
	if err := s.EnsureDir(); err != nil {
		return &CacheCorruptionError{Path: s.dir, Op: "write", Err: err}
	}
	path := s.path(name)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return &CacheCorruptionError{Path: path, Op: "lock", Err: err}
	}
	defer func() { _ = lock.Unlock() }()

	m := loadMap[T](path)
	if err := fn(m); err != nil {
		return err
	}
	return writeAtomic(path, m)
}

// Remotes returns the full remote map
func (s *Store) Remotes() map[string]Remote {
	return loadMap[Remote](s.path(remotesFile))
}

// Remote looks up one remote by identifier
func (s *Store) Remote(id string) (Remote, bool) {
	r, ok := s.Remotes()[id]
	return r, ok
}

// SaveRemote upserts a remote record
func (s *Store) SaveRemote(r Remote) error {
	return mutateMap(s, remotesFile, func(m map[string]Remote) error {
		m[r.ID] = r
		return nil
	})
}

// DeleteRemote removes a remote and cascades to its cached contexts and
// workspaces. The cascade is best effort: a failure after the remote
// entry itself is gone leaves orphaned cache entries, which every
// reader tolerates and the next reconciliation cannot resurrect.
func (s *Store) DeleteRemote(id string) (bool, error) {
	found := false
	err := mutateMap(s, remotesFile, func(m map[string]Remote) error {
		if _, ok := m[id]; ok {
			found = true
			delete(m, id)
		}
		return nil
	})
	if err != nil || !found {
		return found, err
	}
	prefix := id + ":"
	if err := deletePrefix[CachedContext](s, contextsFile, prefix); err != nil {
		LogWarn("Cascade delete of contexts for %s failed: %v", id, err)
	}
	if err := deletePrefix[CachedWorkspace](s, workspacesFile, prefix); err != nil {
		LogWarn("Cascade delete of workspaces for %s failed: %v", id, err)
	}
	return true, nil
}

func deletePrefix[T any](s *Store, name, prefix string) error {
	return mutateMap(s, name, func(m map[string]T) error {
		for k := range m {
			if strings.HasPrefix(k, prefix) {
				delete(m, k)
			}
		}
		return nil
	})
}

// MarkSynced records a successful reconciliation time on a remote. A
// remote deleted since the sync started is left deleted.
func (s *Store) MarkSynced(id string, at time.Time) error {
	return mutateMap(s, remotesFile, func(m map[string]Remote) error {
		r, ok := m[id]
		if !ok {
			return nil
		}
		t := at
		r.LastSynced = &t
		m[id] = r
		return nil
	})
}

// Contexts returns the full context cache
func (s *Store) Contexts() map[string]CachedContext {
	return loadMap[CachedContext](s.path(contextsFile))
}

// ContextsForRemote returns the cached contexts belonging to one remote
func (s *Store) ContextsForRemote(remoteID string) map[string]CachedContext {
	return filterPrefix(s.Contexts(), remoteID+":")
}

// Workspaces returns the full workspace cache
func (s *Store) Workspaces() map[string]CachedWorkspace {
	return loadMap[CachedWorkspace](s.path(workspacesFile))
}

// WorkspacesForRemote returns the cached workspaces belonging to one remote
func (s *Store) WorkspacesForRemote(remoteID string) map[string]CachedWorkspace {
	return filterPrefix(s.Workspaces(), remoteID+":")
}

func filterPrefix[T any](m map[string]T, prefix string) map[string]T {
	out := make(map[string]T)
	for k, v := range m {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

// UpsertContext caches a single context record under remoteID:id
func (s *Store) UpsertContext(remoteID string, c CachedContext) error {
	return mutateMap(s, contextsFile, func(m map[string]CachedContext) error {
		m[CacheKey(remoteID, c.ID)] = c
		return nil
	})
}

// ReconcileContexts replaces one remote's slice of the context cache
// with the freshly fetched set: every fetched record is upserted and
// every previously cached entry for that remote absent from the fetch
// is deleted. Entries for other remotes are untouched. The deletion
// diff runs against the on-disk state read under the file lock, so a
// concurrent writer's additions for other remotes cannot be lost.
func (s *Store) ReconcileContexts(remoteID string, fetched []CachedContext, syncedAt time.Time) error {
	prefix := remoteID + ":"
	return mutateMap(s, contextsFile, func(m map[string]CachedContext) error {
		keep := make(map[string]bool, len(fetched))
		for _, c := range fetched {
			c.LastSynced = syncedAt
			key := CacheKey(remoteID, c.ID)
			m[key] = c
			keep[key] = true
		}
		for k := range m {
			if strings.HasPrefix(k, prefix) && !keep[k] {
				delete(m, k)
			}
		}
		return nil
	})
}

// ReconcileWorkspaces is ReconcileContexts for the workspace cache
func (s *Store) ReconcileWorkspaces(remoteID string, fetched []CachedWorkspace, syncedAt time.Time) error {
	prefix := remoteID + ":"
	return mutateMap(s, workspacesFile, func(m map[string]CachedWorkspace) error {
		keep := make(map[string]bool, len(fetched))
		for _, w := range fetched {
			w.LastSynced = syncedAt
			key := CacheKey(remoteID, w.ID)
			m[key] = w
			keep[key] = true
		}
		for k := range m {
			if strings.HasPrefix(k, prefix) && !keep[k] {
				delete(m, k)
			}
		}
		return nil
	})
}

// Aliases returns the full alias map
func (s *Store) Aliases() map[string]Alias {
	return loadMap[Alias](s.path(aliasesFile))
}

// Alias looks up one alias by name
func (s *Store) Alias(name string) (Alias, bool) {
	a, ok := s.Aliases()[name]
	return a, ok
}

// SetAlias creates or updates an alias. The target must be a
// syntactically valid full address at write time; resolution later is a
// single indirection, so a dangling or alias-naming target is resolved
// literally, never chained.
func (s *Store) SetAlias(name, address string) error {
	if _, err := ParseAddress(address); err != nil {
		return err
	}
	now := time.Now()
	return mutateMap(s, aliasesFile, func(m map[string]Alias) error {
		a, ok := m[name]
		if ok {
			a.Address = address
			a.UpdatedAt = now
		} else {
			a = Alias{Address: address, CreatedAt: now, UpdatedAt: now}
		}
		m[name] = a
		return nil
	})
}

// RemoveAlias deletes an alias, reporting whether it existed
func (s *Store) RemoveAlias(name string) (bool, error) {
	found := false
	err := mutateMap(s, aliasesFile, func(m map[string]Alias) error {
		if _, ok := m[name]; ok {
			found = true
			delete(m, name)
		}
		return nil
	})
	return found, err
}

// Session reads the singleton session record. Missing or corrupt state
// is a zero Session, i.e. nothing bound.
func (s *Store) Session() Session {
	var sess Session
	data, err := os.ReadFile(s.path(sessionFile))
	if err != nil {
		return Session{}
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		LogDebug("Treating unparseable session file as unbound: %v", err)
		return Session{}
	}
	return sess
}

// SaveSession persists the singleton session record
func (s *Store) SaveSession(sess Session) error {
	if err := s.EnsureDir(); err != nil {
		return &CacheCorruptionError{Path: s.dir, Op: "write", Err: err}
	}
	path := s.path(sessionFile)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return &CacheCorruptionError{Path: path, Op: "lock", Err: err}
	}
	defer func() { _ = lock.Unlock() }()
	return writeAtomic(path, sess)
}
