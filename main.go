package main

import (
	"os"

	"github.com/lint-studio/lint-studio/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
