// loadplan — cargo load planner
//
// Plans truck and container loads from cargo manifests and writes
// loading documents (floor diagram PDF, pallet labels, plan workbook,
// DXF, HTML report).
//
// Build:
//   go build -o loadplan ./cmd/loadplan
//
// Usage:
//   loadplan plan -i manifest.xlsx -t TENT_20T -o ./out
//   loadplan serve --addr :8080

package main

import (
	"os"

	"github.com/packman/loadplan/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
