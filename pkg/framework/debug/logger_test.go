package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", FlagLevel|FlagPrefix)

		logger.Info("Hello %s", "World")

		output := buf.String()
		if !strings.Contains(output, "[INFO]") {
			t.Error("Missing log level")
		}
		if !strings.Contains(output, "[TEST]") {
			t.Error("Missing prefix")
		}
		if !strings.Contains(output, "Hello World") {
			t.Error("Missing message")
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelOff)
		logger.Error("nothing")
		if buf.Len() > 0 {
			t.Error("Level off should not write")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetEnabled(false)

		logger.Info("should not appear")

		if buf.Len() > 0 {
			t.Error("Disabled logger should not write")
		}
	})

	t.Run("FileInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile|FlagLevel)

		logger.Info("test")

		output := buf.String()
		if !strings.Contains(output, "logger_test.go:") {
			t.Errorf("File info should point at the caller: %s", output)
		}
	})

	t.Run("Fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", 0)

		logger.Infow("width changed", "group", 1, "width", 3, "dangling")

		output := strings.TrimSpace(buf.String())
		expected := "width changed group=1 width=3 dangling=?"
		if output != expected {
			t.Errorf("Got %q, want %q", output, expected)
		}
	})

	t.Run("LogFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "probe.log")
		f, err := OpenLogFile(path)
		if err != nil {
			t.Fatalf("OpenLogFile: %v", err)
		}
		defer SetOutput(os.Stderr)

		Default().With("Counter").Warn("limit %d", 4)
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "limit 4") {
			t.Errorf("Log file holds %q", data)
		}
	})
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "lilac", FlagPrefix)
	parent.SetLevel(LogLevelDebug)

	child := parent.With("Rounder")
	if child.Prefix() != "lilac/Rounder" {
		t.Errorf("Child prefix = %q, want lilac/Rounder", child.Prefix())
	}
	if child.Level() != LogLevelDebug {
		t.Error("Child should inherit the parent level")
	}

	child.Debug("pool size %d", 3)
	if !strings.Contains(buf.String(), "[lilac/Rounder] pool size 3") {
		t.Errorf("Unexpected output %q", buf.String())
	}

	// Children share the parent's output
	var other bytes.Buffer
	parent.SetOutput(&other)
	child.Info("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Error("Child should follow the parent's output")
	}

	// Level changes do not leak upward
	child.SetLevel(LogLevelError)
	if !parent.Enabled(LogLevelDebug) {
		t.Error("Parent level should be unaffected by child")
	}

	if New(&buf, "", 0).With("x").Prefix() != "x" {
		t.Error("Child of unprefixed logger should use name alone")
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
		}
		if tt.expected == "UNKNOWN" {
			continue
		}
		parsed, err := ParseLevel(strings.ToLower(tt.expected))
		if err != nil || parsed != tt.level {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.expected, parsed, err)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func BenchmarkLogger(b *testing.B) {
	logger := New(bytes.NewBuffer(nil), "BENCH", DefaultFlags)

	b.Run("Enabled", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})

	b.Run("BelowLevel", func(b *testing.B) {
		logger.SetLevel(LogLevelError)
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})
}
