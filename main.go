package main

import "github.com/wormhole-foundation/worm/cmd"

func main() {
	cmd.Execute()
}
