// Package config loads runtime configuration for the gate device client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the pass directory gRPC endpoint
//	-i int      online status check interval (seconds), 0 disables probing
//	-t int      probe timeout (seconds)
//	-d string   path of the local SQLite cache
//	-m string   address for the /metrics listener, empty disables it
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "probe_timeout": "2s",
//	  "database_path": "/var/lib/gateguard/cache.db",
//	  "lookup_cache_size": 256,
//	  "lookup_cache_ttl": "1m",
//	  "metrics_addr": "127.0.0.1:9102",
//	  "log_level": "info"
//	}
package config
