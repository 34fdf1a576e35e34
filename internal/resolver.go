package internal

// ResolvedTarget names a concrete resource on a concrete remote. Path
// is carried through from the address, not consumed by resolution.
type ResolvedTarget struct {
	RemoteID   string
	ResourceID string
	Path       string
	Container  ContainerType
}

// Resolver turns user-typed tokens (bare ids, aliases, full addresses)
// into resolved targets using the alias map and session state.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver over the given store
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps a token to a (remote, resource) pair. Order matters:
//
//  1. Alias substitution, a single indirection. An alias's stored value
//     is itself a full address, so this must run before parsing.
//  2. Address grammar parse of the (possibly substituted) token.
//  3. Bare-token fallback against the session's bound remote. Last
//     resort, so a resource name colliding with a remote name never
//     silently routes elsewhere.
//
// A session bound to a remote that no longer exists is treated as
// unbound rather than an error, to keep bare tokens robust against
// stale session state.
func (r *Resolver) Resolve(token string, container ContainerType) (*ResolvedTarget, error) {
	candidate := token
	if a, ok := r.store.Alias(token); ok {
		candidate = a.Address
	}

	if addr, err := ParseAddress(candidate); err == nil {
		return &ResolvedTarget{
			RemoteID:   addr.RemoteID(),
			ResourceID: addr.Resource,
			Path:       addr.Path,
			Container:  container,
		}, nil
	}

	if remoteID, ok := r.ActiveRemote(); ok {
		return &ResolvedTarget{
			RemoteID:   remoteID,
			ResourceID: candidate,
			Container:  container,
		}, nil
	}

	return nil, &UnboundRemoteError{Token: token}
}

// ActiveRemote returns the session's bound remote if it still exists in
// the remote map
func (r *Resolver) ActiveRemote() (string, bool) {
	sess := r.store.Session()
	if sess.BoundRemote == "" {
		return "", false
	}
	if _, ok := r.store.Remote(sess.BoundRemote); !ok {
		return "", false
	}
	return sess.BoundRemote, true
}
