package main

import "dirindex/cmd/dirindex/cmd"

func main() {
	cmd.Execute()
}
