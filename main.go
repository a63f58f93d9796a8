package main

import "mangoadmi/cmd"

func main() {
	cmd.Execute()
}
