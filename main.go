package main

import cmd "github.com/rohmanhakim/liondine-api/internal/cli"

func main() {
	cmd.Execute()
}
