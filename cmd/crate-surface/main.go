package main

import "github.com/mvp-joe/crate-surface/internal/cli"

func main() {
	cli.Execute()
}
