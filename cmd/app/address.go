package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/starford/sift/internal"
)

// applyAddress splits a host:port flag into the HTTP config.
func applyAddress(cfg *internal.Config, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	cfg.App.HTTP.Host = host
	cfg.App.HTTP.Port = port
	return cfg.App.HTTP.Validate()
}
