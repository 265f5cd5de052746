package calculation

// Logger is the minimal logging surface the engine emits diagnostics through.
// A zap SugaredLogger satisfies it directly. No calculation result depends on
// whether a logger is attached.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards everything. It stands in whenever SetLogger was never
// called so engine code can log unconditionally.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
