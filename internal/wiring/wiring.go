// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/oaspect/oaspect/internal/adapters/config"
	_ "github.com/oaspect/oaspect/internal/adapters/fetch"
	_ "github.com/oaspect/oaspect/internal/adapters/logger"
	_ "github.com/oaspect/oaspect/internal/adapters/recordstore"
	_ "github.com/oaspect/oaspect/internal/adapters/telemetry"
	_ "github.com/oaspect/oaspect/internal/adapters/watch"
	// Register app and engine nodes.
	_ "github.com/oaspect/oaspect/internal/app"
	_ "github.com/oaspect/oaspect/internal/engine/cache"
)
