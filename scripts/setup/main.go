// Package main installs the developer tooling the other scripts expect.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

var workflowFlag = flag.String("workflow", "local", "Workflow: local, ci, or coverage")

// tool is one installable dependency. Everything installs via go install.
type tool struct {
	name   string
	module string
}

var allTools = []tool{
	{"golangci-lint", "github.com/golangci/golangci-lint/v2/cmd/golangci-lint@v2.9.0"},
	{"staticcheck", "honnef.co/go/tools/cmd/staticcheck@2023.1.7"},
	{"gotestsum", "gotest.tools/gotestsum@v1.12.0"},
	{"gofumpt", "mvdan.cc/gofumpt@v0.7.0"},
}

func main() {
	flag.Parse()

	for _, tl := range toolsFor(*workflowFlag) {
		if toolPresent(tl.name) {
			fmt.Printf("✅ %s is already installed\n", tl.name)
			continue
		}
		fmt.Printf("📦 Installing %s...\n", tl.name)
		if err := install(tl.module); err != nil {
			fmt.Printf("❌ Failed to install %s: %v\n", tl.name, err)
			continue
		}
		fmt.Printf("✅ Installed %s\n", tl.name)
	}
}

// toolsFor narrows the tool list per workflow. Local and ci take everything;
// coverage runs need only gotestsum.
func toolsFor(workflow string) []tool {
	if workflow != "coverage" {
		return allTools
	}
	var picked []tool
	for _, tl := range allTools {
		if tl.name == "gotestsum" {
			picked = append(picked, tl)
		}
	}
	return picked
}

// toolPresent checks PATH and then GOPATH/bin; go install writes to the
// latter and it is not always on PATH.
func toolPresent(name string) bool {
	if _, err := exec.LookPath(name); err == nil {
		return true
	}
	binName := name
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	_, err := os.Stat(filepath.Join(gobin(), binName))
	return err == nil
}

func gobin() string {
	if gp := os.Getenv("GOPATH"); gp != "" {
		return filepath.Join(gp, "bin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "go", "bin")
}

func install(module string) error {
	cmd := exec.Command("go", "install", module)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
