package main

import "github.com/emiliopalmerini/flexrun/internal/cli"

func main() {
	cli.Execute()
}
