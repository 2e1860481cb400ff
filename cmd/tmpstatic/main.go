// Command tmpstatic serves the chat client's static assets, separately
// from the websocket broker (cmd/tmpserver). Grounded on
// original_source/static_app.py, which ran its own HTTP server process for
// exactly this purpose.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/atsika/tmpchat/staticserver"
)

func main() {
	addr := flag.String("addr", "localhost:5000", "address to listen on")
	dir := flag.String("dir", ".", "directory of static assets to serve")
	flag.Parse()

	log.Printf("tmpstatic: serving %s on %s", *dir, *addr)
	if err := http.ListenAndServe(*addr, staticserver.Handler(*dir)); err != nil {
		log.Fatalf("tmpstatic: %v", err)
	}
}
