package main

import (
	"github.com/simon/remmux/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit)
	cmd.Execute()
}
