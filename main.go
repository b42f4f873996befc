package main

import (
	"github.com/dina-lab3D/FamAnalysis/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
