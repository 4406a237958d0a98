package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wtask/chatrelay/pkg/semver"
)

type (
	// Configuration - server configuration
	Configuration struct {
		// IPAddress - bind the address
		IPAddress string
		// Port - bind the port
		Port uint
		// WebSocketAddress - listen address of websocket gateway, empty to disable
		WebSocketAddress string
		// MaxClients - max number of simultaneously connected clients
		MaxClients int
		// BufferSize - size of single read from client
		BufferSize int
		// QueueSize - num of outgoing messages queued per client
		QueueSize int
		// WriteTimeout - deadline to deliver single message to client
		WriteTimeout time.Duration
		// ClientIdleTimeout - idle period before client is disconnected, 0 to keep forever
		ClientIdleTimeout time.Duration
		// LookupTimeout - deadline of client hostname lookup
		LookupTimeout time.Duration
		// ClientHistoryGreets - num of messages from chat history which is pushed to newly connected client
		ClientHistoryGreets int
		// ShutdownTimeout - time given to clients to be disconnected on stop
		ShutdownTimeout time.Duration
	}
)

var (
	// Config - current configuration of the server
	Config = Configuration{
		Port:            9999,
		MaxClients:      10,
		BufferSize:      1024,
		QueueSize:       64,
		WriteTimeout:    10 * time.Second,
		LookupTimeout:   2 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}

	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// Version - app version fingerprint
	Version = semver.V{Major: 1, Minor: 0, Patch: 0}.String()
)

func init() {
	out := flag.CommandLine.Output()
	printUsage := func() {
		fmt.Fprintf(out, "Launch text chat relay over TCP\n\n\t%s [options]\nOptions:\n\n", BinaryName)
		flag.PrintDefaults()
		fmt.Fprint(out, "\n")
	}
	printError := func(msg string) {
		fmt.Fprintf(out, "%s (v%s) error:\n\n\t%s\n", BinaryName, Version, msg)
	}

	help, version := false, false
	flag.BoolVar(&help, "help", false, "Print usage help")
	flag.BoolVar(&version, "version", false, "Print version")
	flag.StringVar(&Config.IPAddress, "ip", Config.IPAddress, "Listen address")
	flag.UintVar(&Config.Port, "port", Config.Port, "Listen port")
	flag.StringVar(&Config.WebSocketAddress, "ws", "", "Listen address of websocket gateway, e.g. ':8080' (disabled when empty)")
	flag.IntVar(&Config.MaxClients, "max-clients", Config.MaxClients, "Max number of simultaneously connected clients.")
	flag.IntVar(&Config.BufferSize, "buffer-size", Config.BufferSize, "Size in bytes of single read from client.")
	flag.IntVar(&Config.QueueSize, "queue-size", Config.QueueSize, "Num of outgoing messages queued per client.")
	flag.DurationVar(&Config.WriteTimeout, "write-timeout", Config.WriteTimeout, "Deadline to deliver single message to client.")
	flag.DurationVar(&Config.ClientIdleTimeout, "client-timeout", 0, "Idle duration before client is disconnected, 0 to keep idle clients.")
	flag.DurationVar(&Config.LookupTimeout, "lookup-timeout", Config.LookupTimeout, "Deadline of client hostname lookup.")
	flag.IntVar(
		&Config.ClientHistoryGreets,
		"history-greets",
		0,
		"Num of messages from chat history which is pushed to newly connected client.",
	)
	flag.DurationVar(&Config.ShutdownTimeout, "shutdown-timeout", Config.ShutdownTimeout, "Time given to disconnect clients on stop.")

	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}
	if version {
		fmt.Fprintln(out, BinaryName, Version)
		os.Exit(0)
	}

	if msg := Config.validate(); msg != "" {
		printError(msg)
		os.Exit(1)
	}

	fmt.Fprint(out, "TCP chat server is launching, press Ctrl-C to stop...\n")
}

func (c Configuration) validate() string {
	switch {
	case c.Port > 65535:
		return "port value should be less or equal 65535"
	case c.MaxClients < 1:
		return "max-clients value should be greater or equal 1"
	case c.BufferSize < 1:
		return "buffer-size value should be greater or equal 1"
	case c.QueueSize < 1:
		return "queue-size value should be greater or equal 1"
	case c.WriteTimeout <= 0:
		return "write-timeout value should be greater 0"
	case c.ClientIdleTimeout < 0:
		return "client-timeout value should be greater or equal 0"
	case c.LookupTimeout <= 0:
		return "lookup-timeout value should be greater 0"
	case c.ClientHistoryGreets < 0:
		return "history-greets value should be greater or equal 0"
	case c.ShutdownTimeout <= 0:
		return "shutdown-timeout value should be greater 0"
	}
	return ""
}
