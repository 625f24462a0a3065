package main

import "github.com/pfrederiksen/jp-covid-stats/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
