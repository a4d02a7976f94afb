package main

import "github.com/KaramelBytes/dataview-cli/cmd"

func main() {
	cmd.Execute()
}
