package main

import "gettext-extractor/internal/cli"

func main() {
	cli.Execute()
}
