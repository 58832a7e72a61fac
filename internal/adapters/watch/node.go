package watch

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/oaspect/oaspect/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watch"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Watcher, error) {
			w, err := NewWatcher()
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	})
}
