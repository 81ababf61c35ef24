// Package sink abstracts where finished reports end up. The pipeline only
// hands over bytes and a logical name; local directories and remote object
// stores are interchangeable behind the same interface.
package sink

import "context"

// Sink persists an encoded report and returns a stable identifier for it
// (a path, object key, or remote file ID depending on the implementation).
type Sink interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}
