package main

import (
	_ "go.uber.org/automaxprocs"
	"vending-machine/cmd"
)

func main() {
	cmd.Start()
}
