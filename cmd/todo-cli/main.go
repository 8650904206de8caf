package main

import "tododapp/cmd/todo-cli/cmd"

func main() {
	cmd.Execute()
}
