package fetch

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"

	"github.com/oaspect/oaspect/internal/adapters/config"
	"github.com/oaspect/oaspect/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewWithClients(
				&http.Client{Timeout: cfg.FetchTimeout},
				&http.Client{Timeout: cfg.RevalidateTimeout},
			), nil
		},
	})
}
