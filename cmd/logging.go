package cmd

import (
	"io"
	"unicode"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// consoleEncoder keeps terminal control sequences embedded in VAA payloads out of the log output.
type consoleEncoder struct {
	zapcore.Encoder
}

func (e consoleEncoder) Clone() zapcore.Encoder {
	return consoleEncoder{e.Encoder.Clone()}
}

func (e consoleEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}

	b := buf.Bytes()
	for i := range b {
		if unicode.IsControl(rune(b[i])) && !unicode.IsSpace(rune(b[i])) {
			b[i] = '\x1A' // Substitute character
		}
	}

	return buf, nil
}

// filterCore drops entries whose message is in suppressed.
type filterCore struct {
	zapcore.Core
	suppressed map[string]struct{}
}

func newFilterCore(core zapcore.Core, suppressed []string) zapcore.Core {
	if len(suppressed) == 0 {
		return core
	}
	set := make(map[string]struct{}, len(suppressed))
	for _, msg := range suppressed {
		set[msg] = struct{}{}
	}
	return &filterCore{Core: core, suppressed: set}
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields), suppressed: c.suppressed}
}

func (c *filterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if _, drop := c.suppressed[entry.Message]; drop {
		return ce
	}
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

type logConfig struct {
	level      zapcore.Level
	json       bool
	suppressed []string
}

func newLogger(w io.Writer, cfg logConfig) *zap.Logger {
	var enc zapcore.Encoder
	if cfg.json {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = consoleEncoder{zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())}
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(cfg.level))
	return zap.New(newFilterCore(core, cfg.suppressed))
}
