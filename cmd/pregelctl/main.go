// Command pregelctl serves the read-mostly introspection API (httpapi) over
// an in-memory registry.Registry; its only mutating route runs a graph. It is an optional embedding convenience,
// not the engine's CLI — the engine package itself has no knowledge of
// HTTP or of this binary.
package main

import (
	"log"
	"os"

	"github.com/Gearhartlove/pregel-ex/httpapi"
	"github.com/Gearhartlove/pregel-ex/registry"
)

func main() {
	addr := os.Getenv("PREGELCTL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	r := registry.New()
	app := httpapi.New(r)

	log.Printf("pregelctl listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
