package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags handled here are passed to the flag set (see
// flagx.FilterArgs), so the JSON config flags do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-d", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	probeTimeout := fs.Int("t", int(cfg.ProbeTimeout.Seconds()), "probe timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local pass cache")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
}
