package main

import "github.com/KaramelBytes/streamstats-cli/cmd"

func main() {
	cmd.Execute()
}
