package redis

import (
	"context"
	"io"
)

// Shutdown adapts client.Close to the shutdown hook signature:
//
//	app.Run(cfg.Addr(),
//	    anvil.ShutdownHook(redis.Shutdown(client)),
//	)
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Close()
	}
}
