// Package buffer provides the unbounded queue between event producers and
// the runner loop.
package buffer

import "log/slog"

// Unbounded creates a channel buffer that grows as needed.
// It returns a write-only channel to feed data in, and a read-only channel to read data out.
//
// initialCap: The starting size of the backing slice (performance optimization).
// hardLimit: The maximum number of items to buffer before dropping (safety valve).
//
// Usage:
//
//	in, out := buffer.Unbounded[event.Event](64, 4096, log)
//	in <- ev
//	ev := <-out
func Unbounded[T any](initialCap, hardLimit int, log *slog.Logger) (chan<- T, <-chan T) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	in := make(chan T, 10)  // Small input buffer to reduce context switching
	out := make(chan T, 10) // Small output buffer

	go func() {
		defer close(out)

		queue := make([]T, 0, initialCap)
		dropped := 0

		for {
			var next T
			var downstream chan T

			// Enable the 'out' case only if we have data to send.
			if len(queue) > 0 {
				next = queue[0]
				downstream = out
			}

			select {
			case val, ok := <-in:
				if !ok {
					// Input closed. Flush remaining queue then exit.
					for _, item := range queue {
						out <- item
					}
					return
				}

				// Safety valve: the consumer is stuck. Dropping the oldest
				// item keeps the newest input, such as a quit request.
				if hardLimit > 0 && len(queue) >= hardLimit {
					var zero T
					queue[0] = zero
					queue = queue[1:]
					dropped++
					if dropped == 1 || dropped%1000 == 0 {
						log.Warn("queue limit reached, dropping oldest", "limit", hardLimit, "dropped", dropped)
					}
				}

				queue = append(queue, val)

			case downstream <- next:
				var zero T
				queue[0] = zero
				queue = queue[1:]
			}
		}
	}()

	return in, out
}
