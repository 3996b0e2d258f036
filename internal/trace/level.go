package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded events are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ничего не пишется, уровень оставлен для совместимости конфигов
	LevelPhase        // driver + pass
	LevelDetail       // + строки
	LevelDebug        // + каждый токен и ошибка
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest is the last scope each level admits.
var finest = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeLine,
	LevelDebug:  ScopeToken,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case; the empty string means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(finest) {
		return false
	}
	return scope != 0 && scope <= finest[l]
}
