package main

import (
	"sheetgrip/internal/cli"
)

// Version is set at build time
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	cli.Execute()
}
