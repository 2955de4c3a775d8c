package main

import "github.com/trusty-cli/trusty/cmd"

func main() {
	cmd.Execute()
}
