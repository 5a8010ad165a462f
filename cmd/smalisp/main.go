package main

import (
	"os"

	"github.com/cwbudde/go-smalisp/cmd/smalisp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
