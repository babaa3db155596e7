package zlog

import (
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	l := NewStdLogger(LevelDebug)
	if !l.V(LevelDebug).Enabled() {
		t.Error("LevelDebug logger should enable Debug-level output")
	}
	if l.V(LevelTrace).Enabled() {
		t.Error("LevelDebug logger should not enable Trace-level output")
	}
}

func TestNoopLoggerNeverEnabled(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	SetDefault(NoopLogger{})
	if V(LevelDebug).Enabled() {
		t.Error("NoopLogger should never be enabled")
	}
}

func TestSetDefaultInstallsLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	SetDefault(NewStdLogger(LevelTrace))
	if !V(LevelTrace).Enabled() {
		t.Error("installed trace-level logger should report enabled at V(LevelTrace)")
	}
}

func TestLevelPrefix(t *testing.T) {
	if p := levelPrefix(LevelTrace); !strings.HasPrefix(p, "TRACE") {
		t.Errorf("levelPrefix(LevelTrace) = %q", p)
	}
	if p := levelPrefix(LevelDebug); !strings.HasPrefix(p, "DEBUG") {
		t.Errorf("levelPrefix(LevelDebug) = %q", p)
	}
}
