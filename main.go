package main

import "map2vmf/internal/cli"

func main() {
	cli.Execute()
}
