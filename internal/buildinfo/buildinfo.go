// Package buildinfo carries values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/gateguard/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "fmt"

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// String renders the build triple for banners and logs.
func String() string {
	return fmt.Sprintf("version %s (built %s, commit %s)", Version, Date, Commit)
}
