package internal

import (
	"regexp"
	"strings"
)

// addressRe captures user, remote, resource and the optional path of a
// full resource address "user@remote:resource/path". The path group is
// either empty or begins with "/" because the resource group cannot
// contain a slash.
var addressRe = regexp.MustCompile(`^([^@]+)@([^:]+):([^/]+)(.*)$`)

// localRemotes are host spellings treated as the same "local" remote
// for display purposes only. They do not collapse to a single cache
// key: alice@localhost and alice@127.0.0.1 are distinct partitions.
var localRemotes = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"local":     true,
}

// Address is a parsed resource address. User, Remote and Resource are
// always non-empty; Path is empty or begins with "/".
type Address struct {
	User     string
	Remote   string
	Resource string
	Path     string
}

// RemoteID returns the "user@remote" partition key for this address
func (a Address) RemoteID() string {
	return a.User + "@" + a.Remote
}

// IsLocal reports whether the remote host is one of the local spellings
func (a Address) IsLocal() bool {
	return localRemotes[a.Remote]
}

// String renders the address back to its canonical form. It is the
// syntactic inverse of ParseAddress.
func (a Address) String() string {
	return a.User + "@" + a.Remote + ":" + a.Resource + a.Path
}

// ParseAddress parses a full resource address. It returns
// InvalidAddressError when the string does not match the grammar or any
// of the user/remote/resource segments is empty after trimming. The
// path is never validated against the resource's children; that is the
// remote's responsibility.
func ParseAddress(s string) (*Address, error) {
	m := addressRe.FindStringSubmatch(s)
	if m == nil {
		return nil, &InvalidAddressError{Token: s}
	}
	user := strings.TrimSpace(m[1])
	remote := strings.TrimSpace(m[2])
	resource := strings.TrimSpace(m[3])
	if user == "" || remote == "" || resource == "" {
		return nil, &InvalidAddressError{Token: s}
	}
	return &Address{
		User:     user,
		Remote:   remote,
		Resource: resource,
		Path:     m[4],
	}, nil
}

// ParseRemoteID parses the stricter two-field "user@remote" form used
// where no resource is present, e.g. when binding a default remote or
// adding a new one.
func ParseRemoteID(s string) (string, error) {
	at := strings.Index(s, "@")
	if at < 0 {
		return "", &InvalidAddressError{Token: s}
	}
	user := strings.TrimSpace(s[:at])
	remote := strings.TrimSpace(s[at+1:])
	if user == "" || remote == "" {
		return "", &InvalidAddressError{Token: s}
	}
	if strings.ContainsAny(remote, "@:/") {
		return "", &InvalidAddressError{Token: s}
	}
	return user + "@" + remote, nil
}

// IsLocalRemote reports whether a remote host spelling is local
func IsLocalRemote(host string) bool {
	return localRemotes[host]
}

// DisplayRemote returns the host as shown in listings, collapsing the
// local spellings to "local". Display only; cache keys keep the
// original spelling.
func DisplayRemote(host string) string {
	if localRemotes[host] {
		return "local"
	}
	return host
}

// DisplayRemoteID renders a user@remote identifier for listings,
// collapsing local host spellings in the host half. Identifiers that do
// not split on "@" are returned unchanged.
func DisplayRemoteID(id string) string {
	at := strings.Index(id, "@")
	if at < 0 {
		return id
	}
	return id[:at+1] + DisplayRemote(id[at+1:])
}

// InferContainerType guesses whether a bare resource name refers to a
// workspace or a context. Best-effort, for display only: routing always
// receives an explicit ContainerType from the caller.
func InferContainerType(resource string) ContainerType {
	lower := strings.ToLower(resource)
	if strings.HasPrefix(lower, "ws-") || strings.HasPrefix(lower, "ws_") || strings.Contains(lower, "workspace") {
		return ContainerWorkspace
	}
	return ContainerContext
}
