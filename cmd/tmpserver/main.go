// Command tmpserver runs the chat broker over websocket, matching the
// teacher's cmd/azurl in shape: flag-parsed configuration, log.Fatalf on
// startup failure, no subcommands.
package main

import (
	"flag"
	"log"

	"github.com/atsika/tmpchat"
)

func main() {
	addr := flag.String("addr", tmpchat.DefaultListenAddr, "address to listen on")
	maxClients := flag.Int("max-clients", tmpchat.DefaultMaxClients, "maximum concurrent clients")
	notSetTimeout := flag.Duration("notset-timeout", tmpchat.DefaultNotSetTimeout, "cumulative idle timeout before a username is set")
	setTimeout := flag.Duration("set-timeout", tmpchat.DefaultSetTimeout, "per-message idle timeout once a username is set")
	pingInterval := flag.Duration("ping-interval", tmpchat.DefaultPingInterval, "websocket keep-alive ping interval (0 disables)")
	metricsInterval := flag.Duration("metrics-interval", tmpchat.DefaultMetricsInterval, "occupancy print interval (0 disables)")
	flag.Parse()

	srv, err := tmpchat.NewServer(
		tmpchat.WithListenAddr(*addr),
		tmpchat.WithMaxClients(*maxClients),
		tmpchat.WithNotSetTimeout(*notSetTimeout),
		tmpchat.WithSetTimeout(*setTimeout),
		tmpchat.WithPingInterval(*pingInterval),
		tmpchat.WithMetricsInterval(*metricsInterval),
	)
	if err != nil {
		log.Fatalf("tmpserver: configuration error: %v", err)
	}

	log.Printf("tmpserver: listening on %s (max_clients=%d)", *addr, *maxClients)
	if err := srv.Serve(); err != nil {
		log.Fatalf("tmpserver: %v", err)
	}
}
