package main

import "github.com/mchmarny/sidenav/pkg/cli"

// main allows `go install github.com/mchmarny/sidenav@latest`.
func main() {
	cli.Main()
}
