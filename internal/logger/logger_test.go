package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func resetLog(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { Log = zap.NewNop() })
}

func readLog(t *testing.T, path string) []byte {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return data
}

func TestNopBeforeSetup(t *testing.T) {
	// Must not panic before Setup.
	Log.Info("discarded")
	Named("test").Warn("discarded")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	resetLog(t)
	before := Log

	if err := Setup(Options{Level: "loud"}); err == nil {
		t.Fatal("Expected error for unknown level")
	}
	if Log != before {
		t.Error("Log should be unchanged after a failed Setup")
	}
}

func TestFileOutput(t *testing.T) {
	resetLog(t)
	logFile := filepath.Join(t.TempDir(), "meshkit.log")

	if err := Setup(Options{Level: "debug", File: logFile}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Named("assets").Debug("loaded model", zap.String("path", "cube.obj"), zap.Int("meshes", 2))

	data := readLog(t, logFile)
	for _, want := range []string{`"msg":"loaded model"`, `"path":"cube.obj"`, `"logger":"assets"`, `"level":"debug"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("log file missing %s:\n%s", want, data)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		hidden    bool
		debugSeen bool
	}{
		{"", false, false},
		{"debug", false, true},
		{"warn", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			resetLog(t)
			logFile := filepath.Join(t.TempDir(), "filtered.log")
			if err := Setup(Options{Level: tc.level, File: logFile}); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}

			Log.Debug("chatter")
			Log.Info("progress")
			Log.Warn("shown")

			data := readLog(t, logFile)
			if got := bytes.Contains(data, []byte("chatter")); got != tc.debugSeen {
				t.Errorf("debug entry written = %v, want %v", got, tc.debugSeen)
			}
			if got := !bytes.Contains(data, []byte("progress")); got != tc.hidden {
				t.Errorf("info entry hidden = %v, want %v", got, tc.hidden)
			}
			if !bytes.Contains(data, []byte("shown")) {
				t.Error("warn entry should be written")
			}
		})
	}
}
