package main

import (
	"github.com/lindadb/ldb/index"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Value: "127.0.0.1:8669",
		Usage: "admin API listen address",
	}
	spaceFlag = cli.StringFlag{
		Name:  "space",
		Value: "default",
		Usage: "tuple space name, attached to every published replication event",
	}
	capacityFlag = cli.IntFlag{
		Name:  "capacity",
		Value: index.DefaultCapacity,
		Usage: "T-tree node capacity",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Value: 256,
		Usage: "point-read cache size, 0 disables caching",
	}
	peersFlag = cli.StringSliceFlag{
		Name:  "peer",
		Usage: "address of a peer to replicate out()/eval() results to (repeatable)",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0=crit .. 5=trace)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file supplying values for flags not set on the command line",
	}
)
