package cache

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/oaspect/oaspect/internal/adapters/config"
	"github.com/oaspect/oaspect/internal/adapters/fetch"
	"github.com/oaspect/oaspect/internal/adapters/logger"
	"github.com/oaspect/oaspect/internal/adapters/recordstore"
	"github.com/oaspect/oaspect/internal/adapters/telemetry"
	"github.com/oaspect/oaspect/internal/core/ports"
	"github.com/oaspect/oaspect/internal/engine/normalizer"
)

// NodeID is the unique identifier for the cache manager Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fetch.NodeID,
			recordstore.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.RecordStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			memo, err := normalizer.NewMemo(cfg.MemoSize)
			if err != nil {
				return nil, err
			}
			return NewManager(fetcher, store, log, tracer, memo).WithDefaultTTL(cfg.TTL), nil
		},
	})
}
