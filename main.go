package main

import "lisplet/cmd"

func main() {
	cmd.Execute()
}
