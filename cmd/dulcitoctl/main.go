package main

import "undulcito/cmd/dulcitoctl/commands"

func main() {
	commands.Execute()
}
