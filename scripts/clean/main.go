// Package main removes build and test artefacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	removeDirs("bin", "logs")
	removeMatching(".rsv.log", "coverage*", "*.out", "*.test", "*.coverprofile", "profile.cov")
}

func removeDirs(dirs ...string) {
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("❌ Failed to remove dir %s: %v\n", dir, err)
			continue
		}
		fmt.Printf("✅ Removed dir %s\n", dir)
	}
}

func removeMatching(patterns ...string) {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fmt.Printf("❌ Bad pattern %s: %v\n", pattern, err)
			continue
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil {
				fmt.Printf("❌ Failed to remove %s: %v\n", match, err)
				continue
			}
			fmt.Printf("✅ Removed %s\n", match)
		}
	}
}
