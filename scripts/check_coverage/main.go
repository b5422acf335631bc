// Package main checks per-function coverage in a coverage profile, holding
// every non-main function to 100% apart from a short list of documented
// exceptions.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var badgeFlag = flag.Bool("badge", false, "also write coverage.svg with the total percentage")

// exceptions maps a function location, as printed by go tool cover -func, to
// the minimum acceptable coverage for it.
var exceptions = map[string]float64{
	// filepath.Abs fails only when the working directory has been removed
	"github.com/kapil1024/Redfish-Service-Validator/internal/fs/path_resolver.go:23": 66.0,
	// the fsnotify error branch needs a kernel-side watch failure
	"github.com/kapil1024/Redfish-Service-Validator/internal/schema/watcher.go:50": 90.0,
	// the double-check store branch only runs when resolvers race
	"github.com/kapil1024/Redfish-Service-Validator/internal/schema/catalog.go:170": 85.0,
}

func main() {
	flag.Parse()
	profile := "coverage.out"
	if flag.NArg() > 0 {
		profile = flag.Arg(0)
	}

	out, err := exec.Command("go", "tool", "cover", "-func", profile).Output()
	if err != nil {
		fmt.Printf("❌ go tool cover failed: %v\n", err)
		os.Exit(1)
	}

	rows, total := parseFuncProfile(out)

	var failures []row
	for _, r := range rows {
		if r.skip() {
			continue
		}
		floor, ok := exceptions[r.location]
		if !ok {
			floor = 100.0
		}
		if r.percent < floor {
			failures = append(failures, r)
		}
	}

	if len(failures) > 0 {
		fmt.Println("❌ Coverage check failed! Functions below their required coverage:")
		for _, r := range failures {
			fmt.Printf("  %s %s %.1f%%\n", r.location, r.name, r.percent)
		}
		os.Exit(1)
	}

	fmt.Println("✅ All functions meet their required coverage")
	if total != "" {
		fmt.Printf("📊 %s\n", total)
	}
	if *badgeFlag {
		writeBadge(total)
	}
}

type row struct {
	location string // file:line as printed by go tool cover
	name     string
	percent  float64
}

// skip reports rows the check never holds to a threshold: script helpers and
// command entry points.
func (r row) skip() bool {
	if strings.Contains(r.location, "/scripts/") {
		return true
	}
	return r.name == "main" && strings.Contains(r.location, "main.go")
}

func parseFuncProfile(out []byte) (rows []row, total string) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "total:") {
			total = line
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(fields[len(fields)-1], "%"), 64)
		if err != nil {
			continue
		}
		rows = append(rows, row{
			location: strings.TrimSuffix(fields[0], ":"),
			name:     fields[1],
			percent:  pct,
		})
	}
	return rows, total
}

// writeBadge renders a small SVG badge carrying the total coverage figure.
func writeBadge(total string) {
	fields := strings.Fields(total)
	if len(fields) == 0 {
		fmt.Println("❌ No total row in the profile; badge not written")
		os.Exit(1)
	}
	pctText := fields[len(fields)-1]
	pct, err := strconv.ParseFloat(strings.TrimSuffix(pctText, "%"), 64)
	if err != nil {
		fmt.Printf("❌ Could not parse total coverage: %v\n", err)
		os.Exit(1)
	}

	colour := "#e05d44" // red
	switch {
	case pct >= 95:
		colour = "#4c1" // green
	case pct >= 85:
		colour = "#a4a61d" // yellowgreen
	case pct >= 75:
		colour = "#dfb317" // yellow
	}

	svg := fmt.Sprintf(badgeTemplate, colour, pctText)
	if err := os.WriteFile("coverage.svg", []byte(svg), 0o600); err != nil {
		fmt.Printf("❌ Could not write coverage.svg: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Badge written: coverage.svg (%s)\n", pctText)
}

//nolint:misspell // SVG attributes use stop-color
const badgeTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="110" height="20" role="img">
  <linearGradient id="s" x2="0" y2="100%%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <clipPath id="r"><rect width="110" height="20" rx="3" fill="#fff"/></clipPath>
  <g clip-path="url(#r)">
    <rect width="70" height="20" fill="#555"/>
    <rect x="70" width="40" height="20" fill="%s"/>
    <rect width="110" height="20" fill="url(#s)"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,sans-serif" font-size="11">
    <text x="35" y="14">coverage</text>
    <text x="90" y="14">%s</text>
  </g>
</svg>
`
