package main

import "github.com/cnaples79/ai-calendar/internal/cli"

func main() {
	cli.Execute()
}
