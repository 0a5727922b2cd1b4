package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/afevis/modcheck/internal/infrastructure/cli"
)

func main() {
	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isVerbose supplies the flag default; --verbose overrides it either way.
func isVerbose() bool {
	return strings.EqualFold(os.Getenv("MODCHECK_DEBUG"), "1") || strings.EqualFold(os.Getenv("MODCHECK_DEBUG"), "true")
}
