package logx

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the logging backend.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "json" or "text" for slog, or "zap".
	Format string
	// File enables zap with a rotating log file when set.
	File string
}

// New builds a Logger from opts. Output goes to w unless opts.File is set.
func New(opts Options, w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	if opts.File != "" || opts.Format == "zap" {
		return NewZapAdapter(newZap(opts, w))
	}

	hopts := &slog.HandlerOptions{Level: slogLevel(opts.Level)}
	var h slog.Handler
	if opts.Format == "text" {
		h = slog.NewTextHandler(w, hopts)
	} else {
		h = slog.NewJSONHandler(w, hopts)
	}
	return NewSlogAdapter(slog.New(h))
}

func newZap(opts Options, w io.Writer) *zap.Logger {
	var sink zapcore.WriteSyncer
	if opts.File != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // MB
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		})
	} else {
		sink = zapcore.AddSync(w)
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	})
	core := zapcore.NewCore(enc, sink, zapLevel(opts.Level))
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}
