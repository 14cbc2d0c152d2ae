package main

import (
	"os"

	"github.com/tonhe/snmpdash/cmd"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}
