package main

import "github.com/dabtools/dabrowse/cmd"

func main() {
	cmd.Execute()
}
