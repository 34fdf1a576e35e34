package internal

import "fmt"

// InvalidAddressError represents a malformed resource address. Bare
// tokens are never invalid; this is only returned when the caller
// required a full address (alias targets, remote identifiers).
type InvalidAddressError struct {
	Token string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q: expected user@remote:resource[/path]", e.Token)
}

// UnboundRemoteError represents a bare token that could not be routed
// because no remote is bound in the session
type UnboundRemoteError struct {
	Token string
}

func (e *UnboundRemoteError) Error() string {
	return fmt.Sprintf("cannot resolve %q: no remote bound (use a full address or run 'hubctl use remote <user@remote>')", e.Token)
}

// RemoteNotFoundError represents an address or bind target naming a
// remote that is not in the remote map
type RemoteNotFoundError struct {
	RemoteID string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("unknown remote %q (run 'hubctl remote list')", e.RemoteID)
}

// RemoteUnreachableError represents a network failure talking to a
// known remote
type RemoteUnreachableError struct {
	RemoteID string
	Err      error
}

func (e *RemoteUnreachableError) Error() string {
	return fmt.Sprintf("remote %s unreachable: %v", e.RemoteID, e.Err)
}

func (e *RemoteUnreachableError) Unwrap() error {
	return e.Err
}

// CacheCorruptionError represents a failed store write. Read failures
// never produce it: an unreadable file degrades to an empty map.
type CacheCorruptionError struct {
	Path string
	Op   string // "lock", "encode", "write", "rename"
	Err  error
}

func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf("cache write failed: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CacheCorruptionError) Unwrap() error {
	return e.Err
}
