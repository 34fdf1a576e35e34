package internal

import (
	"strings"
	"time"
)

// ContainerType distinguishes the two server-side resource containers.
// Routing always receives it explicitly from the caller; it is never
// derived from the resource name (see InferContainerType).
type ContainerType string

const (
	ContainerContext   ContainerType = "context"
	ContainerWorkspace ContainerType = "workspace"
)

// AuthConfig holds the credential material for a remote
type AuthConfig struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

// Remote is a configured server endpoint plus its credentials.
// ID is the remote identifier string "user@remote" and doubles as the
// map key in remotes.json.
type Remote struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	APIBase    string     `json:"apiBase"`
	Auth       AuthConfig `json:"auth"`
	Version    string     `json:"version,omitempty"`
	LastSynced *time.Time `json:"lastSynced"`
}

// BaseURL returns the remote's URL joined with its API base path
func (r Remote) BaseURL() string {
	base := strings.TrimRight(r.URL, "/")
	if r.APIBase == "" {
		return base
	}
	return base + "/" + strings.Trim(r.APIBase, "/")
}

// CachedContext is a server-shaped context record plus the timestamp of
// the sync that produced it. Cache entries are read-through: they may be
// evicted and rebuilt from the remote at any time.
type CachedContext struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	NodeCount   int       `json:"nodeCount,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
	LastSynced  time.Time `json:"lastSynced"`
}

// CachedWorkspace is a server-shaped workspace record plus sync metadata
type CachedWorkspace struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	ContextIDs []string  `json:"contextIds,omitempty"`
	UpdatedAt  string    `json:"updatedAt,omitempty"`
	LastSynced time.Time `json:"lastSynced"`
}

// Alias maps a user-defined short name to one full resource address.
// Aliases never chain: the stored address is resolved literally.
type Alias struct {
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is the singleton "current bindings" record. A BoundRemote that
// no longer exists in the remote map is treated as unbound, not an error.
type Session struct {
	BoundRemote      string     `json:"boundRemote,omitempty"`
	BoundContext     string     `json:"boundContext,omitempty"`
	DefaultWorkspace string     `json:"defaultWorkspace,omitempty"`
	BoundAt          *time.Time `json:"boundAt,omitempty"`
}

// Inventory is a snapshot of one remote's cached resources, used by the
// export formats.
type Inventory struct {
	RemoteID    string            `json:"remoteId" yaml:"remote_id"`
	GeneratedAt time.Time         `json:"generatedAt" yaml:"generated_at"`
	Contexts    []CachedContext   `json:"contexts" yaml:"contexts"`
	Workspaces  []CachedWorkspace `json:"workspaces" yaml:"workspaces"`
}

// CacheKey builds the partition-scoped key for a cached resource
func CacheKey(remoteID, resourceID string) string {
	return remoteID + ":" + resourceID
}
