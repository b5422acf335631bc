// Package main builds the rsv binary into bin/ with the version stamped in.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

func main() {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		fmt.Printf("❌ Failed to create bin directory: %v\n", err)
		os.Exit(1)
	}

	binaryName := "rsv"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	outputPath := filepath.Join("bin", binaryName)

	version := describeVersion()
	fmt.Printf("Building %s...\n", version)

	ldflags := "-X github.com/kapil1024/Redfish-Service-Validator/internal/app.Version=" + version
	cmd := exec.Command("go", "build", "-trimpath", "-ldflags", ldflags, "-o", outputPath, "./cmd/rsv")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Build complete: %s\n", outputPath)
}

// describeVersion asks git for the nearest tag, falling back to "dev" in a
// bare checkout or when git is unavailable.
func describeVersion() string {
	var out bytes.Buffer
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "dev"
	}
	return strings.TrimSpace(out.String())
}
