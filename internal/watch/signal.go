package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithShutdown returns a copy of parent that is cancelled on SIGTERM or
// SIGINT. onSignal, when non-nil, is called with the signal before the
// context is cancelled. The returned stop function releases the signal
// registration and cancels the context.
func WithShutdown(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
