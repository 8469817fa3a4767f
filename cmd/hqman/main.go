package main

import "github.com/rrezende/hq-manager-cli/cli"

func main() {
	cli.Execute()
}
