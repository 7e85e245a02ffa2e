package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"terraflow/internal/pipeline"
	"terraflow/pkg/terrain"
)

type paramSet struct {
	droplets     int
	erodeRate    float64
	depositRate  float64
	capacity     float64
	talus        float64
	transferRate float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("droplets=%d erode=%.2f deposit=%.2f capacity=%.1f talus=%.3f transfer=%.2f",
		p.droplets, p.erodeRate, p.depositRate, p.capacity, p.talus, p.transferRate)
}

type scenarioResult struct {
	params      paramSet
	massRemoved float64
	maxDrop     float64
	maxRaise    float64
	roughness   float64
	riverCount  int
	elapsed     time.Duration
}

func main() {
	width := flag.Int("w", 128, "terrain width in cells")
	height := flag.Int("h", 128, "terrain height in cells")
	seed := flag.Int64("seed", 1337, "terrain seed shared by all scenarios")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 10, "how many results to print")
	flag.Parse()

	dropletOptions := []int{5000, 10000, 20000}
	erodeOptions := []float64{0.1, 0.3, 0.5}
	depositOptions := []float64{0.1, 0.3, 0.5}
	capacityOptions := []float64{2.0, 4.0, 8.0}
	talusOptions := []float64{0.005, 0.01, 0.02}
	transferOptions := []float64{0.1, 0.25, 0.5}

	var sets []paramSet
	for _, droplets := range dropletOptions {
		for _, erode := range erodeOptions {
			for _, deposit := range depositOptions {
				for _, capacity := range capacityOptions {
					for _, talus := range talusOptions {
						for _, transfer := range transferOptions {
							sets = append(sets, paramSet{
								droplets:     droplets,
								erodeRate:    erode,
								depositRate:  deposit,
								capacity:     capacity,
								talus:        talus,
								transferRate: transfer,
							})
						}
					}
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %dx%d terrain)\n", len(sets), *workers, *width, *height)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(*width, *height, *seed, params)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].maxDrop > all[j].maxDrop
	})

	limit := *top
	if limit > len(all) {
		limit = len(all)
	}
	fmt.Printf("\nDeepest valleys after %s:\n", time.Since(start).Round(time.Millisecond))
	for _, res := range all[:limit] {
		fmt.Printf("  drop=%.4f raise=%.4f removed=%.2f rough=%.5f rivers=%d [%s] (%s)\n",
			res.maxDrop, res.maxRaise, res.massRemoved, res.roughness, res.riverCount, res.params, res.elapsed.Round(time.Millisecond))
	}
}

func runScenario(w, h int, seed int64, params paramSet) scenarioResult {
	cfg := pipeline.DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = seed
	cfg.Hydraulic.Droplets = params.droplets
	cfg.Hydraulic.ErodeRate = params.erodeRate
	cfg.Hydraulic.DepositRate = params.depositRate
	cfg.Hydraulic.Capacity = params.capacity
	cfg.Thermal.TalusThreshold = params.talus
	cfg.Thermal.TransferRate = params.transferRate

	pipe := pipeline.NewWithConfig(cfg)
	pipe.Reset(seed)
	before := pipe.Snapshot()

	start := time.Now()
	pipe.Run()
	elapsed := time.Since(start)

	after := pipe.Field()
	res := scenarioResult{params: params, elapsed: elapsed, riverCount: len(pipe.Rivers())}
	for i, v := range after.Values() {
		delta := before.Values()[i] - v
		if delta > 0 {
			res.massRemoved += delta
			if delta > res.maxDrop {
				res.maxDrop = delta
			}
		} else if -delta > res.maxRaise {
			res.maxRaise = -delta
		}
	}
	res.roughness = meanSlope(after)
	return res
}

// meanSlope reports the average absolute height difference between
// horizontally adjacent cells.
func meanSlope(f *terrain.HeightField) float64 {
	w := f.Width()
	h := f.Height()
	if w < 2 {
		return 0
	}
	sum := 0.0
	count := 0
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			sum += math.Abs(f.At(x, y) - f.At(x-1, y))
			count++
		}
	}
	return sum / float64(count)
}
