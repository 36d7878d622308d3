// ldb runs a standalone Linda tuple-space coordination server: out()
// deposits a tuple, in()/rd() take or peek blocking on a match,
// inp()/rdp() are their non-blocking counterparts, and eval() schedules
// a registered function whose result is deposited once it completes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/lindadb/ldb/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "ldb",
		Usage:     "Linda tuple-space coordination server",
		Copyright: "2026 lindadb",
		Commands: []cli.Command{
			{
				Name:   "serve",
				Usage:  "run the tuple-space server and its admin API",
				Flags:  []cli.Flag{addrFlag, spaceFlag, capacityFlag, cacheSizeFlag, peersFlag, verbosityFlag, configFlag},
				Action: serveAction,
			},
			{
				Name:   "shell",
				Usage:  "interactive REPL issuing out/in/rd/inp/rdp/len against a fresh in-process store",
				Flags:  []cli.Flag{spaceFlag, capacityFlag, cacheSizeFlag, verbosityFlag},
				Action: shellAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(verbosity int) {
	level := verbosityToLevel(verbosity)
	useColor := log.IsTerminal(os.Stderr)
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)))
}

func verbosityToLevel(v int) slog.Level {
	switch {
	case v <= 0:
		return log.LevelCrit
	case v == 1:
		return log.LevelError
	case v == 2:
		return log.LevelWarn
	case v == 3:
		return log.LevelInfo
	case v == 4:
		return log.LevelDebug
	default:
		return log.LevelTrace
	}
}
