package main

import "codectx/internal/cli"

func main() {
	cli.Execute()
}
