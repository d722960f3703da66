// Command bvhdebug is a thin external collaborator of the bvh library:
// it builds a tree from generated AABBs, logs its stats, and then either
// runs a few queries against it in a terminal demo (-headless) or opens
// a window to draw the tree as wireframe boxes. It exists so the teacher's windowing/input/GPU
// dependencies (go-gl, glfw, eiannone/keyboard) keep a legitimate home
// without becoming part of the library's own API surface — spec.md §6
// is explicit that the library itself exposes no CLI.
//
// Grounded on main.go's flag-driven EngineConfig/demo-menu pattern,
// trimmed to the one demo this repo cares about.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"

	bvh "github.com/mirstar13/go-bvh"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (max_leaf_size, max_depth, enable_sah)")
	numBoxes := flag.Int("n", 200, "number of random AABBs to build the tree from")
	strategyName := flag.String("strategy", "sah", "build strategy: sah, median, or equal")
	seed := flag.Int64("seed", 1, "random seed for generated AABBs")
	headless := flag.Bool("headless", false, "run an interactive terminal demo instead of opening a window")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := bvh.DefaultConfig()
	if *configPath != "" {
		loaded, err := bvh.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bvhdebug: loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	strategy, err := parseStrategy(*strategyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bvhdebug: %v\n", err)
		os.Exit(1)
	}

	items := randomBoxes(*numBoxes, rand.New(rand.NewSource(*seed)))
	builder := bvh.NewBuilder(cfg, strategy)
	tree, err := builder.Build(items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bvhdebug: building tree: %v\n", err)
		os.Exit(1)
	}
	tree.SetLogger(logger)

	stats := tree.Stats()
	logger.Infof("built tree: strategy=%s items=%d nodes=%d leaves=%d max_depth=%d balance_factor=%.2f",
		*strategyName, *numBoxes, stats.NodeCount, stats.LeafCount, stats.MaxDepth, stats.BalanceFactor)

	if !tree.Validate() {
		logger.Warn("tree failed Validate() after build")
	}

	if *headless {
		runHeadlessDemo(tree, logger)
		return
	}

	if err := runWindow(tree); err != nil {
		fmt.Fprintf(os.Stderr, "bvhdebug: %v\n", err)
		os.Exit(1)
	}
}

func parseStrategy(name string) (bvh.Strategy, error) {
	switch name {
	case "sah":
		return bvh.StrategySAH, nil
	case "median":
		return bvh.StrategyMedian, nil
	case "equal":
		return bvh.StrategyEqual, nil
	default:
		return bvh.StrategySAH, fmt.Errorf("unknown strategy %q (want sah, median, or equal)", name)
	}
}

// randomBoxes scatters numBoxes unit-ish AABBs through a 100-unit cube,
// standing in for whatever real spatial payloads a bvhdebug caller
// would otherwise supply.
func randomBoxes(numBoxes int, rng *rand.Rand) []bvh.BuildItem {
	items := make([]bvh.BuildItem, numBoxes)
	for i := range items {
		center := bvh.Vector3{
			X: rng.Float64()*100 - 50,
			Y: rng.Float64()*100 - 50,
			Z: rng.Float64()*100 - 50,
		}
		half := 0.5 + rng.Float64()*2
		items[i] = bvh.BuildItem{
			Bounds: bvh.NewAABB(
				bvh.Vector3{X: center.X - half, Y: center.Y - half, Z: center.Z - half},
				bvh.Vector3{X: center.X + half, Y: center.Y + half, Z: center.Z + half},
			),
			Payload: i,
		}
	}
	return items
}
