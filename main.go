package main

import "github.com/hubgrid/hubctl/cmd"

func main() {
	cmd.Execute()
}
