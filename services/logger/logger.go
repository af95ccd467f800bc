package logsvc

import (
	"log"

	"github.com/trezcool/gpacalc/core"
)

// New picks the logger matching the configuration: Rollbar when a token is
// set outside of DEV & TEST, the console otherwise.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken == "" || conf.Debug || conf.TestMode {
		return NewConsoleLogger(std, conf.Debug)
	}
	l := NewRollbarLogger(std, conf)
	l.Enable(true)
	return l
}
