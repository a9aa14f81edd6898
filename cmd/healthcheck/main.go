// Command healthcheck probes the server's readiness endpoint for container
// HEALTHCHECK directives. It exits 0 when the database-backed /ready probe
// answers 200.
package main

import (
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(probeURL())
	if err != nil {
		os.Exit(1)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func probeURL() string {
	if url := os.Getenv("HEALTH_URL"); url != "" {
		return url
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/ready"
}
