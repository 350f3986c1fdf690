package main

import "github.com/youmna-rabie/event-registry/internal/cli"

func main() {
	cli.Execute()
}
