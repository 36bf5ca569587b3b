package main

import "github.com/brogergvhs/novelpiad/cmd"

func main() {
	cmd.Execute()
}
