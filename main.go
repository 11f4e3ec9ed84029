package main

import "github.com/cmmoran/treefmt/cmd"

func main() {
	cmd.Execute()
}
