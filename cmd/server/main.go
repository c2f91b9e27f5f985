// path: cmd/server/main.go
package main

import (
	"flag"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"laserchess/internal/game"
	"laserchess/internal/httpx"
)

func main() {
	// Flags with env fallbacks.
	addr := flag.String("addr", getenv("LCHESS_ADDR", ":8080"), "listen address")
	level := flag.String("log-level", getenv("LCHESS_LOG_LEVEL", "info"), "log level (trace..panic)")
	flag.Parse()

	lvl, err := log.ParseLevel(strings.TrimSpace(*level))
	if err != nil {
		log.Fatalf("invalid log level %q: %v", *level, err)
	}
	log.SetLevel(lvl)

	manager := httpx.NewManager(game.ClassicLayout())
	srv := httpx.NewServer(manager)

	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
