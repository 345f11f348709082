package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kilianp07/patterns/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		code := cmd.ExitCode(err)
		var ec *cmd.ExitCodeError
		if !errors.As(err, &ec) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(code)
	}
}
