package main

import (
	"os"

	"github.com/42Bastian/jagsym/cmd/jagsym/cmds"
)

func main() {
	if err := cmds.New().Execute(); err != nil {
		os.Exit(1)
	}
}
