package main

import "github.com/rnwolfe/streakmap/cmd"

func main() {
	cmd.Execute()
}
