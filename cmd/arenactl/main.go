package main

import "github.com/jpickering/rpsls-arena/internal/cli"

func main() {
	cli.Execute()
}
