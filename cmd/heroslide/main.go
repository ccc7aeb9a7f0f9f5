// Command heroslide runs the hero slider in a terminal: slides are drawn as
// banners, transitions are played on the timeline engine, and a prompt menu
// drives navigation.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
