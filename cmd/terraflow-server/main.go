package main

import (
	"flag"
	"log"
	"net/http"

	"terraflow/internal/pipeline"
	"terraflow/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	width := flag.Int("w", 256, "terrain width in cells")
	height := flag.Int("h", 256, "terrain height in cells")
	seed := flag.Int64("seed", 1337, "terrain seed")
	tps := flag.Int("tps", 30, "broadcast frames per second")
	flag.Parse()

	cfg := pipeline.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed

	pipe := pipeline.NewWithConfig(cfg)
	pipe.Reset(*seed)

	srv := server.New(pipe, *tps)
	go srv.Run()

	http.Handle("/ws", srv.Handler())

	log.Printf("terraflow server listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
