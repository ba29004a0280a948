package main

import "github.com/blacktop/go-braille/cmd/braille/cmd"

func main() {
	cmd.Execute()
}
