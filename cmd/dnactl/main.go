package main

import "os"

// Overridden by ldflags at release time.
var version = "dev"

func main() {
	if err := NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
