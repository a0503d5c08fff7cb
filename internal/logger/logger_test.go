package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.level, "json")
		if err != nil {
			t.Fatalf("New(%q): %v", tt.level, err)
		}
		if !l.Core().Enabled(tt.want) {
			t.Errorf("New(%q): level %s not enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
			t.Errorf("New(%q): level below %s should be disabled", tt.level, tt.want)
		}
	}
}

func TestMust_Console(t *testing.T) {
	l := Must("info", "console")
	if l == nil {
		t.Fatal("nil logger")
	}
}
