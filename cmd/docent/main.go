package main

import (
	"github.com/custodia-labs/docent/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
