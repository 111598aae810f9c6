package main

import "patrimony-engine/internal/cli"

func main() {
	cli.Execute()
}
