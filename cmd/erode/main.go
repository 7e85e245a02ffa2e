package main

import (
	"flag"
	"fmt"
	"log"

	"terraflow/internal/pipeline"
	"terraflow/internal/render"
)

func main() {
	width := flag.Int("w", 512, "terrain width in cells")
	height := flag.Int("h", 512, "terrain height in cells")
	seed := flag.Int64("seed", 1337, "terrain seed")
	preset := flag.String("preset", "default", "pipeline preset: default, gentle, aggressive, thermal-only, rivers-only")
	droplets := flag.Int("droplets", 0, "override droplet count (0 keeps the preset value)")
	hardness := flag.Bool("hardness-map", false, "use per-cell noise hardness instead of uniform rock hardness")
	out := flag.String("out", "terrain.png", "grayscale height map output path")
	colorOut := flag.String("color", "", "optional color rendering output path")
	flag.Parse()

	cfg, err := presetConfig(*preset)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.UseHardnessMap = *hardness
	if *droplets > 0 {
		cfg.Hydraulic.Droplets = *droplets
	}

	pipe := pipeline.NewWithConfig(cfg)
	pipe.Reset(*seed)

	lastStage := pipe.Stage()
	log.Printf("generating %dx%d terrain (seed %d, preset %s)", cfg.Width, cfg.Height, *seed, *preset)
	for pipe.Step() {
		if stage := pipe.Stage(); stage != lastStage {
			log.Printf("stage %s (%.0f%%)", stage, pipe.Progress()*100)
			lastStage = stage
		}
	}
	log.Printf("done: %d rivers traced", len(pipe.Rivers()))

	if err := render.SaveGrayPNG(*out, pipe.Field()); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %s", *out)

	if *colorOut != "" {
		size := pipe.Size()
		if err := render.SavePalettedPNG(*colorOut, pipe.Cells(), size.W, size.H, pipe.Palette()); err != nil {
			log.Fatalf("write %s: %v", *colorOut, err)
		}
		log.Printf("wrote %s", *colorOut)
	}
}

func presetConfig(name string) (pipeline.Config, error) {
	switch name {
	case "default":
		return pipeline.DefaultConfig(), nil
	case "gentle":
		return pipeline.GentleConfig(), nil
	case "aggressive":
		return pipeline.AggressiveConfig(), nil
	case "thermal-only":
		return pipeline.ThermalOnlyConfig(), nil
	case "rivers-only":
		return pipeline.RiversOnlyConfig(), nil
	}
	return pipeline.Config{}, fmt.Errorf("unknown preset %q", name)
}
