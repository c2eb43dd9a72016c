package main

import "github.com/pfrederiksen/advent-wins/internal/cli"

func main() {
	cli.Execute()
}
