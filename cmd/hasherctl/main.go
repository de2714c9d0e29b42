package main

import "github.com/dmitrijs2005/hasherdb/internal/cli"

func main() {
	cli.Execute()
}
