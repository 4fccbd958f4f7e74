package main

import (
	"fmt"
	"os"

	"github.com/isdelr/notes-be/internal/cli"
)

func main() {
	if err := cli.New().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "notes: %v\n", err)
		os.Exit(1)
	}
}
