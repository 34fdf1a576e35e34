package internal

import (
	"errors"
	"testing"
)

func TestParseAddress_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		remote   string
		resource string
		path     string
	}{
		{"no path", "alice", "srv", "work", ""},
		{"with path", "alice", "srv", "work", "/notes/today"},
		{"deep path", "bob", "hub.example.com", "ctx-1", "/a/b/c"},
		{"local remote", "alice", "localhost", "scratch", ""},
		{"dotted user", "svc.account", "prod", "pipeline", "/stage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := Address{User: tt.user, Remote: tt.remote, Resource: tt.resource, Path: tt.path}
			parsed, err := ParseAddress(addr.String())
			if err != nil {
				t.Fatalf("ParseAddress(%q) error = %v", addr.String(), err)
			}
			if *parsed != addr {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", addr.String(), *parsed, addr)
			}
		})
	}
}

func TestParseAddress_Rejection(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"bare token", "work"},
		{"missing @", "alicesrv:work"},
		{"missing colon", "alice@srv"},
		{"colon before @", "srv:work"},
		{"empty user", "@srv:work"},
		{"empty remote", "alice@:work"},
		{"empty resource", "alice@srv:"},
		{"whitespace user", "   @srv:work"},
		{"whitespace resource", "alice@srv:   "},
		{"resource is only path", "alice@srv:/work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.token)
			if err == nil {
				t.Fatalf("ParseAddress(%q) succeeded, want InvalidAddressError", tt.token)
			}
			var invalid *InvalidAddressError
			if !errors.As(err, &invalid) {
				t.Errorf("ParseAddress(%q) error = %T, want *InvalidAddressError", tt.token, err)
			}
		})
	}
}

func TestParseAddress_PathShape(t *testing.T) {
	parsed, err := ParseAddress("alice@srv:work/sub/dir")
	if err != nil {
		t.Fatalf("ParseAddress() error = %v", err)
	}
	if parsed.Resource != "work" {
		t.Errorf("Resource = %q, want %q", parsed.Resource, "work")
	}
	if parsed.Path != "/sub/dir" {
		t.Errorf("Path = %q, want %q", parsed.Path, "/sub/dir")
	}
}

func TestAddress_RemoteID(t *testing.T) {
	addr := Address{User: "alice", Remote: "srv", Resource: "work"}
	if got := addr.RemoteID(); got != "alice@srv" {
		t.Errorf("RemoteID() = %q, want %q", got, "alice@srv")
	}
}

func TestParseRemoteID(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"valid", "alice@srv", "alice@srv", false},
		{"valid host", "bob@hub.example.com", "bob@hub.example.com", false},
		{"missing @", "alice", "", true},
		{"empty user", "@srv", "", true},
		{"empty remote", "alice@", "", true},
		{"remote with colon", "alice@srv:work", "", true},
		{"remote with slash", "alice@srv/x", "", true},
		{"remote with second @", "alice@srv@extra", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemoteID(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRemoteID(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRemoteID(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestDisplayRemote(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"localhost", "local"},
		{"127.0.0.1", "local"},
		{"::1", "local"},
		{"local", "local"},
		{"hub.example.com", "hub.example.com"},
	}

	for _, tt := range tests {
		if got := DisplayRemote(tt.host); got != tt.want {
			t.Errorf("DisplayRemote(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestDisplayRemoteID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"alice@localhost", "alice@local"},
		{"alice@127.0.0.1", "alice@local"},
		{"bob@::1", "bob@local"},
		{"alice@hub.example.com", "alice@hub.example.com"},
		{"no-at-sign", "no-at-sign"},
	}

	for _, tt := range tests {
		if got := DisplayRemoteID(tt.id); got != tt.want {
			t.Errorf("DisplayRemoteID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLocalRemotes_DistinctCacheKeys(t *testing.T) {
	// Local spellings are display-equivalent but never collapse as
	// partition keys
	a := Address{User: "alice", Remote: "localhost", Resource: "x"}
	b := Address{User: "alice", Remote: "127.0.0.1", Resource: "x"}
	if !a.IsLocal() || !b.IsLocal() {
		t.Fatal("expected both addresses to be local")
	}
	if a.RemoteID() == b.RemoteID() {
		t.Error("local spellings must keep distinct remote identifiers")
	}
}

func TestInferContainerType(t *testing.T) {
	tests := []struct {
		resource string
		want     ContainerType
	}{
		{"ws-main", ContainerWorkspace},
		{"my-workspace", ContainerWorkspace},
		{"work", ContainerContext},
		{"ctx-7", ContainerContext},
		{"notes", ContainerContext},
	}

	for _, tt := range tests {
		if got := InferContainerType(tt.resource); got != tt.want {
			t.Errorf("InferContainerType(%q) = %q, want %q", tt.resource, got, tt.want)
		}
	}
}
