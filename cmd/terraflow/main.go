//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"terraflow/internal/app"
	"terraflow/internal/core"
	_ "terraflow/internal/pipeline"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Processes()[cfg.Process]
	if !ok {
		log.Fatalf("unknown process %q", cfg.Process)
	}

	proc := factory(nil)
	proc.Reset(cfg.Seed)

	game := app.New(proc, cfg.Scale, cfg.Seed, cfg.Panel)
	size := proc.Size()

	ebiten.SetWindowTitle("terraflow — " + proc.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
