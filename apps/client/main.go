package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/baobab-edu/peerreview-cli/cli"
	"github.com/baobab-edu/peerreview-cli/core"
	logsvc "github.com/baobab-edu/peerreview-cli/services/logger"
	"github.com/baobab-edu/peerreview-cli/services/peerapi"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "CLIENT : ", log.LstdFlags|log.Lmicroseconds)

	logFile, err := openLogFile(core.Conf.GetString("logFile"))
	errAndDie(err)
	defer logFile.Close()

	debug := core.Conf.GetBool("debug") || hasArg(os.Args[1:], "--debug")

	appLog := newAppLogger(logFile, debug)
	api, err := peerapi.NewClient(core.APIBase(debug), appLog)
	errAndDie(err)
	api.Timeout(core.Conf.GetDuration("httpTimeout"))

	if err := cli.Run(context.Background(), os.Stdout, api, appLog); err != nil {
		appLog.Error("client run failed", err)
		logger.Fatalf("error: %s", err)
	}
}

// newAppLogger mirrors to rollbar when a token is configured, otherwise
// keeps everything in the local log file.
func newAppLogger(out io.Writer, debug bool) core.Logger {
	if token := core.Conf.GetString("rollbarToken"); token != "" {
		env := "production"
		if debug {
			env = "development"
		}
		rl := logsvc.NewRollbarLogger(log.New(out, "", log.LstdFlags|log.Lmicroseconds), env)
		rl.Enable(!debug)
		return rl
	}
	return logsvc.NewStdLogger(out)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func hasArg(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
