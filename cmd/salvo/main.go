package main

import (
	"github.com/salvo-game/salvo/internal/cli"
)

func main() {
	cli.Execute()
}
