package main

import (
	"os"

	"github.com/hashicorp-forge/tansdk/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
