package core

// Logger interface for raytracer logging. It is satisfied by the loggers
// returned from pkg/log.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// NopLogger discards everything. Useful in tests and benchmarks.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{})   {}
func (NopLogger) Infof(format string, args ...interface{})    {}
func (NopLogger) Warningf(format string, args ...interface{}) {}
