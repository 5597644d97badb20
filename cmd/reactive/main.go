package main

import (
	"fmt"
	"os"

	"github.com/giovanni1707/DOMHelpers-Reactive-sub000/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
