package main

import "github.com/example/irctc-booker/cmd"

func main() {
	cmd.Execute()
}
