package main

import (
	"github.com/NadeeshaMedagama/modgoviya/cmd"
)

func main() {
	cmd.Start()
}
