package main

import "mindverse/internal/cli"

func main() {
	cli.Execute()
}
