// Package main formats the tree with gofumpt. With -check it only lists
// files needing formatting and fails when there are any.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
)

var checkFlag = flag.Bool("check", false, "list unformatted files and exit non-zero if any")

func main() {
	flag.Parse()

	if _, err := exec.LookPath("gofumpt"); err != nil {
		fmt.Println("gofumpt not found. Install it with 'go run scripts/setup/main.go'")
		os.Exit(1)
	}

	if *checkFlag {
		check()
		return
	}

	fmt.Println("Formatting with gofumpt...")
	cmd := exec.Command("gofumpt", "-l", "-w", ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Formatting failed: %v\n", err)
		os.Exit(1)
	}
}

func check() {
	var out bytes.Buffer
	cmd := exec.Command("gofumpt", "-l", ".")
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ gofumpt failed: %v\n", err)
		os.Exit(1)
	}
	if out.Len() > 0 {
		fmt.Println("❌ Files need formatting:")
		fmt.Print(out.String())
		os.Exit(1)
	}
	fmt.Println("✅ All files formatted")
}
