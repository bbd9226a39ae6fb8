package mcpserver

import (
	"testing"

	"github.com/planify/planify/internal/tracker"
)

// ---------------------------------------------------------------------------
// NewServer
// ---------------------------------------------------------------------------

func Test_NewServer_ReturnsNonNil(t *testing.T) {
	t.Parallel()

	store := tracker.NewStore(memBackend{})
	if srv := NewServer(store); srv == nil {
		t.Fatal("NewServer returned nil")
	}
}
