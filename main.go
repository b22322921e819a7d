package main

import "github.com/samsaffron/term-complete/cmd"

func main() {
	cmd.Execute()
}
