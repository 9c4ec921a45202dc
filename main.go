package main

import "github.com/dotcommander/agentlens/cmd"

func main() {
	cmd.Execute()
}
