package logx

// discard drops every entry.
type discard struct{}

// Nop returns a Logger that drops everything. Handy in tests and as a
// default for optional loggers.
func Nop() Logger { return discard{} }

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field)  {}
func (discard) Warn(string, ...Field)  {}
func (discard) Error(string, ...Field) {}

func (d discard) With(...Field) Logger { return d }
func (discard) Sync() error            { return nil }
