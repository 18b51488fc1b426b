// Command framefit inspects letterbox geometry and exercises the frame
// context headlessly.
//
// Usage:
//
//	framefit fit --frame 800x600 --viewport 1920x1080 --viewport 600x800
//	framefit run --image photo.png --viewport 1280x720 --frames 60 --resize 640x640
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
