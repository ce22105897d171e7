package logsvc

import (
	"io"
	"log"

	"github.com/baobab-edu/peerreview-cli/core"
)

// StdLogger writes to a standard library logger, typically backed by
// the client's log file.
type StdLogger struct {
	std *log.Logger
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(out io.Writer) *StdLogger {
	return &StdLogger{std: log.New(out, "", log.LstdFlags|log.Lmicroseconds)}
}

func (l StdLogger) print(level, msg string, args []interface{}) {
	l.std.Println(level + " | " + msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l StdLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l StdLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l StdLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
