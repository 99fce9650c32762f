package main

import "github.com/amterp/calcus/internal/cli"

func main() {
	cli.Run()
}
