package main

import "github.com/iksnae/routine-assistant/cmd"

func main() {
	cmd.Execute()
}
