package logsvc

import (
	"sort"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/afthonios/catalog/core"
)

// RollbarLogger prints through zap and, when enabled, reports to Rollbar.
type RollbarLogger struct {
	log     *zap.SugaredLogger
	enabled bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(log *zap.SugaredLogger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{log: log}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *RollbarLogger {
	return &RollbarLogger{log: zap.NewNop().Sugar()}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
	l.enabled = enabled
}

// prepare splits args into rollbar arguments and zap key-value pairs.
// expected fmt: msg | error, map[string]interface{}, core.RequestInfo
func (l *RollbarLogger) prepare(msg string, args []interface{}) (report []interface{}, kvs []interface{}) {
	report = make([]interface{}, 0, len(args)+2)
	report = append(report, msg)
	extras := make(map[string]interface{})

	for _, arg := range args {
		switch a := arg.(type) {
		case core.RequestInfo:
			for _, kv := range [][2]string{
				{"request_id", a.ID},
				{"method", a.Method},
				{"path", a.Path},
				{"locale", a.Locale},
			} {
				if kv[1] != "" {
					extras[kv[0]] = kv[1]
					kvs = append(kvs, kv[0], kv[1])
				}
			}
		case error:
			report = append(report, a)
			kvs = append(kvs, "error", a)
		case map[string]interface{}:
			keys := make([]string, 0, len(a))
			for k := range a {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				extras[k] = a[k]
				kvs = append(kvs, k, a[k])
			}
		default:
			kvs = append(kvs, "arg", a)
		}
	}
	if len(extras) > 0 {
		report = append(report, extras)
	}
	return report, kvs
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	report, kvs := l.prepare(msg, args)
	if l.enabled {
		rollbar.Debug(report...)
	}
	l.log.Debugw(msg, kvs...)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	report, kvs := l.prepare(msg, args)
	if l.enabled {
		rollbar.Info(report...)
	}
	l.log.Infow(msg, kvs...)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	report, kvs := l.prepare(msg, args)
	if l.enabled {
		rollbar.Warning(report...)
	}
	l.log.Warnw(msg, kvs...)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	report, kvs := l.prepare(msg, args)
	if l.enabled {
		rollbar.Error(report...)
	}
	l.log.Errorw(msg, kvs...)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	report, kvs := l.prepare(msg, args)
	if l.enabled {
		rollbar.Critical(report...)
		rollbar.Wait()
	}
	l.log.Fatalw(msg, kvs...)
}

// Sync flushes buffered log entries.
func (l *RollbarLogger) Sync() {
	_ = l.log.Sync()
}
