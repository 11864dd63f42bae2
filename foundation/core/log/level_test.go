package log

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DBG", LevelDebug, false},
		{"information", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" err ", LevelError, false},
		{"fatal", LevelFatal, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelShouldLog(t *testing.T) {
	if LevelDebug.ShouldLog(LevelInfo) {
		t.Error("debug should not log at info")
	}
	if !LevelError.ShouldLog(LevelWarn) {
		t.Error("error should log at warn")
	}
}

func TestLevelStrings(t *testing.T) {
	if got := LevelWarn.String(); got != "warn" {
		t.Errorf("String() = %q, want warn", got)
	}
	if got := LevelWarn.ShortString(); got != "WRN" {
		t.Errorf("ShortString() = %q, want WRN", got)
	}
	if got := Level(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestDefaultLevel(t *testing.T) {
	tests := []struct {
		env  string
		want Level
	}{
		{"", LevelInfo},
		{"debug", LevelDebug},
		{"error", LevelError},
		{"chatty", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvLevel, tt.env)
			if got := DefaultLevel(); got != tt.want {
				t.Errorf("DefaultLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
