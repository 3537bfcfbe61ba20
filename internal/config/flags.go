package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line arguments into a [StructuredConfig].
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d server database DSN
//	-l local SQLite database path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s")
//	-server-url remote store address used by the client
//	-log-level, -log-file logging settings
//	-sync-interval, -auto-resolve, -strategy, -purge-tombstones,
//	-retry-base, -retry-max, -connectivity-interval, -queue-file sync settings
//	-login, -password, -register, -once, -direction, -force client run mode
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("ledger-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var cfg StructuredConfig
	var autoResolve bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Local.DSN, "l", "", "Local SQLite database path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server-url", "", "Remote store address")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Client log file")

	fs.DurationVar(&cfg.Sync.Interval, "sync-interval", 0, "Background sync interval")
	fs.BoolVar(&autoResolve, "auto-resolve", true, "Resolve conflicts automatically")
	fs.StringVar(&cfg.Sync.DefaultStrategy, "strategy", "", "Default conflict strategy: local-wins, server-wins, manual")
	fs.BoolVar(&cfg.Sync.PurgeTombstones, "purge-tombstones", false, "Remove synced tombstones locally")
	fs.DurationVar(&cfg.Sync.RetryBase, "retry-base", 0, "First retry delay of a failed queued operation")
	fs.DurationVar(&cfg.Sync.RetryMax, "retry-max", 0, "Retry delay cap")
	fs.DurationVar(&cfg.Sync.ConnectivityInterval, "connectivity-interval", 0, "Remote store probe interval")
	fs.StringVar(&cfg.Sync.QueueFile, "queue-file", "", "Store the operation queue in this JSON file")

	fs.StringVar(&cfg.Client.Login, "login", "", "Account login")
	fs.StringVar(&cfg.Client.Password, "password", "", "Account password")
	fs.BoolVar(&cfg.Client.Register, "register", false, "Register the account before login")
	fs.BoolVar(&cfg.Client.Once, "once", false, "Run one sync cycle and exit")
	fs.StringVar(&cfg.Client.Direction, "direction", "", "Single cycle direction: both, push, pull")
	fs.BoolVar(&cfg.Client.Force, "force", false, "Ignore pull cursors")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	// only an explicitly passed -auto-resolve overrides other sources
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "auto-resolve" {
			cfg.Sync.AutoResolve = &autoResolve
		}
	})

	cfg.Server.HTTPAddress = serverAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
