package main

import (
	"os"

	"github.com/named-data/ndnfw/cmd"
)

func main() {
	if err := cmd.CmdNDNfw.Execute(); err != nil {
		os.Exit(1)
	}
}
