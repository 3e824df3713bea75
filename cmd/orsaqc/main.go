package main

import (
	"github.com/custodia-labs/orsaqc/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
