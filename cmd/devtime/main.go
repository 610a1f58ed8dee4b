package main

import "devtime/cmd/devtime/commands"

func main() {
	commands.Execute()
}
