// Package main lints the tree, running golangci-lint and then staticcheck so
// one failing linter does not hide the other's findings.
package main

import (
	"fmt"
	"os"
	"os/exec"
)

type linter struct {
	name string
	args []string
}

func main() {
	linters := []linter{
		{"golangci-lint", []string{"run"}},
		{"staticcheck", []string{"./..."}},
	}

	failed := false
	for _, l := range linters {
		if _, err := exec.LookPath(l.name); err != nil {
			fmt.Printf("%s not found. Install it with 'go run scripts/setup/main.go'\n", l.name)
			os.Exit(1)
		}
		fmt.Printf("Linting with %s...\n", l.name)
		cmd := exec.Command(l.name, l.args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			failed = true
		}
	}

	if failed {
		fmt.Println("❌ Linting failed")
		os.Exit(1)
	}
}
