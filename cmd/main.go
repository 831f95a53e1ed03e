package main

import (
	"pipewise.dev/cli/internal/interfaces/cli"
)

func main() {
	cli.Execute()
}
