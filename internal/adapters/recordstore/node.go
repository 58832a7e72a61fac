package recordstore

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/oaspect/oaspect/internal/adapters/config"
	"github.com/oaspect/oaspect/internal/core/ports"
)

// NodeID is the unique identifier for the record store Graft node.
const NodeID graft.ID = "adapter.recordstore"

func init() {
	graft.Register(graft.Node[ports.RecordStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.RecordStore, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.CacheDir), nil
		},
	})
}
