package main

import "github.com/univ-lehavre/talent-finder-sub000/cmd/talent-cli/cmd"

func main() {
	cmd.Execute()
}
