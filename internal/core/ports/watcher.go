package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// Watcher observes a local spec source and reports coalesced change
// notifications. Rapid successive writes arrive as a single notification.
type Watcher interface {
	// Start begins watching path and returns the notification channel. The
	// channel is closed when ctx is cancelled or the watcher is stopped.
	Start(ctx context.Context, path string) (<-chan struct{}, error)
	// Stop releases the underlying file system watch.
	Stop() error
}
