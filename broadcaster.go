package tmpchat

// Broadcaster is the single consumer of the inbound broadcast queue (§3,
// §5). It owns no state of its own beyond the channel and the registry it
// fans out to — adapted from the teacher's AdaptivePoll-backed background
// goroutines in the sense that it runs for the server's lifetime as one
// dedicated goroutine, but the teacher has no analogous fan-out consumer;
// this shape instead follows the streamspace Hub.Run() select-loop pattern
// from the rest of the pack, simplified to a single channel since there is
// no register/unregister traffic to multiplex (Registry already owns that).
type Broadcaster struct {
	queue    <-chan []byte
	registry *Registry
	logger   Logger
}

// NewBroadcaster builds a Broadcaster reading from queue and fanning out to
// registry's current sockets.
func NewBroadcaster(queue <-chan []byte, registry *Registry, logger Logger) *Broadcaster {
	return &Broadcaster{queue: queue, registry: registry, logger: logger}
}

// Run drains the queue until it is closed, broadcasting each raw frame to
// every currently registered socket. It forwards bytes verbatim (§4.4): the
// frame is never re-parsed or re-encoded between recv and send. A send
// failure to one recipient is logged and does not affect delivery to
// others, and does not requeue or retry — delivery is best-effort per
// recipient, matching the original's "broadcast and move on" semantics.
func (b *Broadcaster) Run() {
	for raw := range b.queue {
		for _, sock := range b.registry.SnapshotSockets() {
			if err := sock.WriteRaw(raw); err != nil {
				b.logger.Printf("broadcaster: write to socket failed: %v", err)
			}
		}
	}
}
