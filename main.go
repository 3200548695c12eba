package main

import (
	"fmt"
	"os"

	"github.com/woliveiras/jsonclone/pkg/cli"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "jsonclone: %v\n", err)
		os.Exit(1)
	}
}
