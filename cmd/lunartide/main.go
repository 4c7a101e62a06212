package main

import "github.com/bbernstein/lunartide/internal/cli"

func main() {
	cli.Execute()
}
