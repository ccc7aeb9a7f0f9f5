// Package should holds cleanup helpers for defer statements, where a failure
// is worth a log line but not an error return.
package should

import (
	"context"
	"io"

	"github.com/amp-labs/hero-slider/logger"
)

// Close closes c and logs msg at warn level if that fails. A nil closer is
// ignored.
//
//	defer should.Close(ctx, f, "closing deck file")
func Close(ctx context.Context, c io.Closer, msg string, kv ...any) {
	if c == nil {
		return
	}

	if err := c.Close(); err != nil {
		logger.Get(ctx).Warn(msg, append(kv, "error", err)...)
	}
}
