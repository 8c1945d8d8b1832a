// Package log is module-scoped logging over logrus. Warnings and errors
// always print; debug output is opt-in per module.
package log

import (
	"io"
	"strings"

	"gopkg.in/Sirupsen/logrus.v0"
)

type (
	Level  = logrus.Level
	Fields logrus.Fields
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

type (
	Module     uint
	ModuleMask uint64
)

const ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF

const (
	ModCPU Module = iota + 1
	ModVerify
	ModCLI

	endMods
)

var modNames = [endMods]string{"<error>", "cpu", "verify", "cli"}

var modDebugMask ModuleMask

func (mod Module) String() string {
	if mod < endMods {
		return modNames[mod]
	}
	return modNames[0]
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

// Enabled reports whether mod emits at level.
func (mod Module) Enabled(level Level) bool {
	if level <= WarnLevel {
		return true
	}
	if level == DebugLevel {
		return modDebugMask&mod.Mask() != 0
	}
	return logrus.GetLevel() >= level
}

// ModuleByName resolves a name like "cpu"; "all" selects every module.
func ModuleByName(name string) (ModuleMask, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return ModuleMaskAll, true
	}
	for idx, s := range modNames[1:] {
		if s == name {
			return Module(idx + 1).Mask(), true
		}
	}
	return 0, false
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
	if mask != 0 {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

// SetOutput redirects every module.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// SetLevel parses a logrus level name ("info", "warn", ...).
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

func (mod Module) WithFields(fields Fields) Entry {
	return Entry{mod: mod}.WithFields(fields)
}

func (mod Module) WithField(key string, value any) Entry {
	return Entry{mod: mod}.WithField(key, value)
}

func (mod Module) Debugf(format string, args ...any) { Entry{mod: mod}.Debugf(format, args...) }
func (mod Module) Infof(format string, args ...any)  { Entry{mod: mod}.Infof(format, args...) }
func (mod Module) Warnf(format string, args ...any)  { Entry{mod: mod}.Warnf(format, args...) }
func (mod Module) Errorf(format string, args ...any) { Entry{mod: mod}.Errorf(format, args...) }

func (mod Module) Debug(args ...any) { Entry{mod: mod}.Debug(args...) }
func (mod Module) Info(args ...any)  { Entry{mod: mod}.Info(args...) }
func (mod Module) Warn(args ...any)  { Entry{mod: mod}.Warn(args...) }
func (mod Module) Error(args ...any) { Entry{mod: mod}.Error(args...) }
