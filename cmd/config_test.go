package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rnwolfe/streakmap/internal/config"
)

// configTestEnv isolates XDG dirs and the streakmap env for one test.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")
	t.Setenv("STREAKMAP_COLLECTION", "")
	resetFlags(t)
}

// resetFlags restores the package-level flag variables after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	flagCollection, flagRollover, flagTimezone, flagNoColor = "", rolloverFlag{}, "", false
	heatmapFill, heatmapAll, streakJSON = false, false, false
	logAt, logKind = "", "learn"
	versionShort, versionJSON = false, false
	t.Cleanup(func() {
		flagCollection, flagRollover, flagTimezone, flagNoColor = "", rolloverFlag{}, "", false
		heatmapFill, heatmapAll, streakJSON = false, false, false
		logAt, logKind = "", "learn"
		versionShort, versionJSON = false, false
	})
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	fn()

	w.Close()
	return string(<-done)
}

func TestRunConfigGet_KnownKey(t *testing.T) {
	configTestEnv(t)

	cfg := &config.Config{Day: config.DayConfig{Timezone: "UTC"}}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runConfigGet(nil, []string{"day.timezone"}); err != nil {
			t.Errorf("runConfigGet: %v", err)
		}
	})

	if strings.TrimSpace(out) != "UTC" {
		t.Fatalf("expected 'UTC', got: %q", out)
	}
}

func TestRunConfigGet_UnknownKey(t *testing.T) {
	configTestEnv(t)

	err := runConfigGet(nil, []string{"not.a.real.key"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("expected 'unknown config key' in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "day.rollover") {
		t.Errorf("expected valid key hint in error, got: %v", err)
	}
}

func TestRunConfigSet_Rollover(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runConfigSet(nil, []string{"day.rollover", "0"}); err != nil {
			t.Errorf("runConfigSet: %v", err)
		}
	})
	if !strings.Contains(out, "day.rollover") {
		t.Errorf("expected key name in output, got: %q", out)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Day.Rollover == nil || *cfg.Day.Rollover != 0 {
		t.Fatalf("expected rollover 0 to persist, got %v", cfg.Day.Rollover)
	}
}

func TestRunConfigSet_RolloverOutOfRange(t *testing.T) {
	configTestEnv(t)

	for _, v := range []string{"24", "-1", "noon"} {
		if err := runConfigSet(nil, []string{"day.rollover", v}); err == nil {
			t.Errorf("expected error for rollover %q", v)
		}
	}
	if config.Initialized() {
		t.Error("a rejected value should not write the config file")
	}
}

func TestRunConfigSet_UnknownKey(t *testing.T) {
	configTestEnv(t)

	err := runConfigSet(nil, []string{"fake.key", "value"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("expected 'unknown config key' error, got: %v", err)
	}
}

func TestRunConfigSet_BoolTypeMismatch(t *testing.T) {
	configTestEnv(t)

	if err := runConfigSet(nil, []string{"heatmap.fill", "notabool"}); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestRunConfigSet_BoolKey_ValidValues(t *testing.T) {
	for _, val := range []string{"true", "false", "1", "0", "yes", "no"} {
		t.Run(val, func(t *testing.T) {
			configTestEnv(t)
			captureStdout(t, func() {
				if err := runConfigSet(nil, []string{"heatmap.fill", val}); err != nil {
					t.Errorf("runConfigSet heatmap.fill=%q: %v", val, err)
				}
			})
		})
	}
}

func TestRunConfigUnset_KnownKey(t *testing.T) {
	configTestEnv(t)

	cfg := &config.Config{Heatmap: config.HeatmapConfig{Count: "all"}}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runConfigUnset(nil, []string{"heatmap.count"}); err != nil {
			t.Errorf("runConfigUnset: %v", err)
		}
	})
	if !strings.Contains(out, "heatmap.count") {
		t.Errorf("expected key name in output, got: %q", out)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Heatmap.Count != "first" {
		t.Fatalf("expected heatmap.count='first' after unset, got %q", loaded.Heatmap.Count)
	}
}

func TestRunConfigUnset_UnknownKey(t *testing.T) {
	configTestEnv(t)

	err := runConfigUnset(nil, []string{"ghost.key"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("expected 'unknown config key' error, got: %v", err)
	}
}

func TestRunConfigList_ShowsKeys(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runConfigList(nil, nil); err != nil {
			t.Errorf("runConfigList: %v", err)
		}
	})

	for _, key := range config.ValidKeyNames() {
		if !strings.Contains(out, key) {
			t.Errorf("expected key %q in list output, got:\n%s", key, out)
		}
	}
}

func TestRunConfigPath_PrintsPath(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runConfigPath(nil, nil); err != nil {
			t.Errorf("runConfigPath: %v", err)
		}
	})

	if !strings.Contains(out, "streakmap") || !strings.Contains(out, "config.toml") {
		t.Fatalf("expected streakmap config.toml path, got: %q", out)
	}
}

func TestRunConfigEdit_NoEditor(t *testing.T) {
	configTestEnv(t)
	t.Setenv("EDITOR", "")

	err := runConfigEdit(nil, nil)
	if err == nil {
		t.Fatal("expected error when $EDITOR is not set")
	}
	if !strings.Contains(err.Error(), "$EDITOR") {
		t.Errorf("expected $EDITOR mention in error, got: %v", err)
	}
}

func TestRunConfigShow(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runConfigShow(nil, nil); err != nil {
			t.Errorf("runConfigShow: %v", err)
		}
	})
	for _, want := range []string{"Rollover", "collection / 4", "streakmap log"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}
