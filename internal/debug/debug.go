// Package debug provides tracing of the page encoding internals, enabled by
// setting the PARQUETDEBUG environment variable to a true value.
package debug

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	enabled atomic.Bool
	logger  atomic.Pointer[log.Logger]
)

func init() {
	on, _ := strconv.ParseBool(os.Getenv("PARQUETDEBUG"))
	Toggle(on)
	SetLogger(log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)))
}

// Toggle turns on/off debug mode
func Toggle(on bool) { enabled.Store(on) }

// Enabled reports whether debug mode is on.
func Enabled() bool { return enabled.Load() }

// SetLogger replaces the logger that debug lines are written to.
func SetLogger(l log.Logger) {
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	logger.Store(&l)
}

// Do executes a function if debug is enabled, usually for side effects.
func Do(f func()) {
	if Enabled() {
		f()
	}
}

// Format a log line and writes it to the debug logger if debug is enabled.
func Format(format string, args ...any) {
	if Enabled() {
		Log("msg", fmt.Sprintf(format, args...))
	}
}

// Log writes key/value pairs to the debug logger at the debug level if debug
// is enabled.
func Log(keyvals ...any) {
	if Enabled() {
		level.Debug(*logger.Load()).Log(keyvals...)
	}
}
