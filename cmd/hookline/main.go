package main

import "github.com/hooklinehq/hookline/pkg/cli"

func main() {
	cli.Execute()
}
