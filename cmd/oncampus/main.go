package main

import "oncampus/internal/cli"

func main() {
	cli.Execute()
}
