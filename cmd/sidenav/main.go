package main

import "github.com/mchmarny/sidenav/pkg/cli"

func main() {
	cli.Main()
}
