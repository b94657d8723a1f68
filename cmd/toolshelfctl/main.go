package main

import (
	"os"

	"github.com/MrSnakeDoc/toolshelf/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stderr))
}
