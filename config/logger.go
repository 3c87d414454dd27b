package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"uidlc/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// consoleCores splits console output: errors go to stderr, everything below
// requested level threshold goes to stdout.
func consoleCores(level string) (lp, hp zapcore.Core) {
	var lowest zapcore.Level
	switch level {
	case "normal":
		lowest = zapcore.InfoLevel
	case "debug":
		lowest = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}

	lp = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lowest <= lvl && lvl < zapcore.ErrorLevel
		}))
	hp = zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return lp, hp
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func openLogFile(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// Prepare returns our standard logger - configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {

	consoleCoreLP, consoleCoreHP := consoleCores(conf.ConsoleLogger.Level)

	var (
		logLevel       zap.AtomicLevel
		levelRequested = conf.FileLogger.Level
		modeRequested  = conf.FileLogger.Mode
	)

	if rpt != nil {
		// if report is requested always set maximum available logging level for file logger
		levelRequested = "debug"
		modeRequested = "overwrite"
	}

	switch levelRequested {
	case "debug":
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "normal":
		logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		core := zap.New(zapcore.NewTee(consoleCoreHP, consoleCoreLP), zap.AddCaller())
		return core.Named(misc.GetAppName()), nil
	}

	// capture panic log if possible
	panicName := filepath.Join(filepath.Dir(conf.FileLogger.Destination), misc.GetAppName()+"-panic.log")
	if ef, err := openLogFile(panicName, modeRequested); err == nil {
		debug.SetCrashOutput(ef, debug.CrashOptions{})
		rpt.Store("panic.log", ef.Name())
		ef.Close()
	}

	var (
		fileCore zapcore.Core
		newName  string
	)
	fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if f, err := openLogFile(conf.FileLogger.Destination, modeRequested); err == nil {
		fileCore = zapcore.NewCore(fileEncoder, zapcore.Lock(f), logLevel)
		rpt.Store("final.log", f.Name())
	} else if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err == nil {
		newName = f.Name()
		fileCore = zapcore.NewCore(fileEncoder, zapcore.Lock(f), logLevel)
		rpt.Store("final.log", newName)
	} else {
		return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
	}

	core := zap.New(zapcore.NewTee(consoleCoreHP, consoleCoreLP, fileCore), zap.AddCaller())
	if len(newName) != 0 {
		// log was redirected - we need to report this
		core.Warn("Log file was redirected to new location", zap.String("location", newName))
	}
	return core.Named(misc.GetAppName()), nil
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			// multierr and wrapped errors print their chains with %+v, console only needs the message
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
