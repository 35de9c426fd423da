// The simulator plays the module side of the dispatch protocol: it reads one
// request document on stdin and answers on stdout. It stands in for an ABCE
// installation when exercising the adapter end to end.
//
// Build it and point a case at the binary:
//
//	dispatcher:
//	  type: "abce"
//	  conf:
//	    location: "./simulator"
package main

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/wenchichenginl/HERON/core/extmod"
)

func main() {
	cfg := parseFlags()
	if err := (&cfg).Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	var req extmod.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Fatalf("read request: %v", err)
	}
	log.Printf("request: op=%s version=%d", req.Op, req.Version)

	if cfg.Latency > 0 {
		time.Sleep(cfg.Latency)
	}
	if err := json.NewEncoder(os.Stdout).Encode(handle(cfg, &req)); err != nil {
		log.Fatalf("write response: %v", err)
	}
}
