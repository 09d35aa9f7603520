package main

import (
	"github.com/quarry-dev/quarry/internal/cli"
)

func main() {
	cli.Execute()
}
