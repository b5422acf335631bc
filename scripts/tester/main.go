// Package main runs the test suite, optionally collecting a coverage profile
// and handing it to the coverage checker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func main() {
	testArgs, mode := splitArgs(os.Args[1:])

	if mode.coverage() {
		if mode.profile == "" {
			mode.profile = "coverage.out"
			testArgs = append(testArgs, "-coverprofile="+mode.profile)
		}
		if !hasCoverPkg(testArgs) {
			testArgs = append(testArgs, "-coverpkg=./internal/...")
		}
	}

	// gotestsum gives the nicer summary output when installed; coverage runs
	// stick to plain go test so the profile layout stays stable.
	if _, err := exec.LookPath("gotestsum"); err == nil && !mode.coverage() {
		run("gotestsum", append([]string{"--"}, testArgs...)...)
	} else {
		run("go", append([]string{"test"}, testArgs...)...)
	}

	switch {
	case mode.thresholds:
		run("go", "run", "scripts/check_coverage/main.go", mode.profile)
	case mode.summary:
		run("go", "tool", "cover", "-func", mode.profile)
	case mode.browser:
		run("go", "tool", "cover", "-html", mode.profile)
	}
}

type runMode struct {
	thresholds bool
	summary    bool
	browser    bool
	profile    string
}

func (m *runMode) coverage() bool {
	return m.thresholds || m.summary || m.browser
}

// splitArgs separates this script's own flags from the arguments passed
// through to go test.
func splitArgs(args []string) ([]string, *runMode) {
	var testArgs []string
	mode := &runMode{}
	for _, arg := range args {
		switch {
		case arg == "--check-coverage":
			mode.thresholds = true
		case arg == "--summary":
			mode.summary = true
		case arg == "--browser":
			mode.browser = true
		case strings.HasPrefix(arg, "-coverprofile="):
			mode.profile = strings.TrimPrefix(arg, "-coverprofile=")
			testArgs = append(testArgs, arg)
		default:
			testArgs = append(testArgs, arg)
		}
	}
	return testArgs, mode
}

func hasCoverPkg(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-coverpkg") {
			return true
		}
	}
	return false
}

func run(name string, args ...string) {
	cmd := exec.CommandContext(context.Background(), name, args...)
	// Git hooks export GIT_* variables that leak into child processes and
	// change go test behaviour under a hook.
	env := os.Environ()
	kept := env[:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, "GIT_") {
			kept = append(kept, kv)
		}
	}
	cmd.Env = kept
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Command failed: %v\n", err)
		os.Exit(1)
	}
}
