package main

import "github.com/vulnsweep/vulnsweep/cmd/vulnsweep"

func main() {
	vulnsweep.Execute()
}
