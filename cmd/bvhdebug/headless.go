package main

import (
	"fmt"

	"github.com/eiannone/keyboard"
	"github.com/sirupsen/logrus"

	bvh "github.com/mirstar13/go-bvh"
)

// runHeadlessDemo drives the tree's query engine from raw terminal
// keystrokes, grounded on win_input.go's SilentInputManager
// keyboard.Open/GetKey/Close loop — repurposed here from camera
// movement keys to stepping through query demos, since a headless
// bvhdebug run has no camera to move.
func runHeadlessDemo(tree *bvh.Tree, logger *logrus.Logger) {
	if err := keyboard.Open(); err != nil {
		fmt.Printf("bvhdebug: keyboard unavailable (%v), running once and exiting\n", err)
		printDemoQueries(tree, logger)
		return
	}
	defer keyboard.Close()

	fmt.Println("bvhdebug headless demo — r: raycast, n: find nearest, g: query range, q: quit")
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return
		}
		if key == keyboard.KeyEsc || char == 'q' || char == 'Q' {
			return
		}
		switch char {
		case 'r', 'R':
			demoRaycast(tree, logger)
		case 'n', 'N':
			demoNearest(tree, logger)
		case 'g', 'G':
			demoRange(tree, logger)
		}
	}
}

func printDemoQueries(tree *bvh.Tree, logger *logrus.Logger) {
	demoRaycast(tree, logger)
	demoNearest(tree, logger)
	demoRange(tree, logger)
}

func demoRaycast(tree *bvh.Tree, logger *logrus.Logger) {
	hits := tree.Raycast(bvh.Vector3{X: -100, Y: 0, Z: 0}, bvh.Vector3{X: 1, Y: 0, Z: 0}, 200)
	logger.Infof("raycast along +X: %d hits", len(hits))
}

func demoNearest(tree *bvh.Tree, logger *logrus.Logger) {
	payload, found := tree.FindNearest(bvh.Vector3{}, 200)
	logger.Infof("nearest to origin: found=%v payload=%v", found, payload)
}

func demoRange(tree *bvh.Tree, logger *logrus.Logger) {
	results := tree.QueryRange(bvh.Vector3{}, 25)
	logger.Infof("query_range radius=25 around origin: %d payloads", len(results))
}
