// # cmd/undoc/main.go
package main

import (
	"os"

	"undoc/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
