package main

import "arlington-rosters/internal/cli"

func main() {
	cli.Execute()
}
