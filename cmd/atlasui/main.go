package main

import (
	"fmt"
	"os"
)

func main() {
	cmd, closeRuntime := newRootCmd(os.Getenv)
	err := cmd.Execute()
	closeRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "atlasui: %v\n", err)
		os.Exit(1)
	}
}
