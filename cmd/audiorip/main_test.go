package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiorip/internal/catalog"
	"audiorip/internal/container"
	"audiorip/internal/disc"
	"audiorip/internal/disc/disctest"
	"audiorip/internal/msf"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
	catalog    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("AUDIORIP_DEVICE", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		outputDir:  filepath.Join(base, "out"),
		catalog:    filepath.Join(base, "catalog.db"),
	}
	content := strings.Join([]string{
		"[device]",
		`path = "/dev/sr0"`,
		"[output]",
		`dir = "` + env.outputDir + `"`,
		"[catalog]",
		`path = "` + env.catalog + `"`,
		"[paths]",
		`state_dir = "` + filepath.Join(base, "state") + `"`,
		"[logging]",
		`level = "error"`,
		"",
	}, "\n")
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func stubSession(t *testing.T, fake *disctest.Disc) {
	t.Helper()
	orig := openSession
	openSession = func(opts disc.SessionOptions) (*disc.Session, error) {
		return disc.NewSession(fake, nil, nil, opts.SpinDown), nil
	}
	t.Cleanup(func() { openSession = orig })
}

func TestTOCCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	fake := disctest.New(75*60, 75*125+30)
	stubSession(t, fake)

	out, err := env.run(t, "toc")
	if err != nil {
		t.Fatalf("toc: %v", err)
	}
	for _, want := range []string{"00:02:00", "01:02:00", "1:00", "2:05", "2 tracks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if fake.Closed != 1 || fake.Stopped != 0 {
		t.Fatalf("closed=%d stopped=%d", fake.Closed, fake.Stopped)
	}
}

func TestTOCCommandQueryFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	fake := disctest.New(10)
	fake.CountErr = errors.New("no medium")
	stubSession(t, fake)

	if _, err := env.run(t, "toc"); err == nil || !strings.Contains(err.Error(), "no medium") {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestSpindownCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	fake := disctest.New(10)
	stubSession(t, fake)

	if _, err := env.run(t, "spindown"); err != nil {
		t.Fatalf("spindown: %v", err)
	}
	if fake.Stopped != 1 || fake.Closed != 1 {
		t.Fatalf("stopped=%d closed=%d", fake.Stopped, fake.Closed)
	}
}

type recordingEjector struct{ device string }

func (r *recordingEjector) Eject(_ context.Context, device string) error {
	r.device = device
	return nil
}

func TestEjectCommandUsesDeviceFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	ej := &recordingEjector{}
	orig := newEjector
	newEjector = func() disc.Ejector { return ej }
	t.Cleanup(func() { newEjector = orig })

	out, err := env.run(t, "--device", "/dev/sr1", "eject")
	if err != nil {
		t.Fatalf("eject: %v", err)
	}
	if ej.device != "/dev/sr1" || !strings.Contains(out, "Ejected /dev/sr1") {
		t.Fatalf("device=%q out=%q", ej.device, out)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := checkDriveStatus
	t.Cleanup(func() { checkDriveStatus = orig })

	checkDriveStatus = func(string) (disc.DriveStatus, error) { return disc.DriveStatusTrayOpen, nil }
	out, err := env.run(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "[WARN] tray_open") {
		t.Fatalf("unexpected output %q", out)
	}

	checkDriveStatus = func(string) (disc.DriveStatus, error) { return disc.DriveStatusNoInfo, errors.New("permission denied") }
	if _, err := env.run(t, "status"); err == nil {
		t.Fatal("expected error when status query fails")
	}
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.wav")
	data := append(container.WaveHeader(3), make([]byte, 3*msf.BytesPerFrame)...)
	if err := os.WriteFile(good, data, 0o644); err != nil {
		t.Fatal(err)
	}
	short := filepath.Join(dir, "short.wav")
	if err := os.WriteFile(short, data[:len(data)-10], 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"verify", good})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("verify good: %v", err)
	}
	if !strings.Contains(out.String(), "3 frames") {
		t.Fatalf("unexpected output %q", out.String())
	}

	cmd = newRootCommand()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"verify", good, short})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "short.wav") {
		t.Fatalf("expected failure naming short.wav, got %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No rip sessions recorded") {
		t.Fatalf("unexpected output %q", out)
	}

	ctx := context.Background()
	store, err := catalog.Open(ctx, env.catalog)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	session, err := store.BeginSession(ctx, "/dev/sr0", "wav", env.outputDir)
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	if err := store.RecordTrack(ctx, catalog.Track{
		SessionID: session.ID, Track: 1, EndFrame: 75, Path: "track1.wav",
		Bytes: 75 * msf.BytesPerFrame, Status: catalog.StatusRipped,
	}); err != nil {
		t.Fatalf("RecordTrack: %v", err)
	}
	if err := store.FinishSession(ctx, session.ID, catalog.StatusRipped); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	_ = store.Close()

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, session.ID) {
		t.Fatalf("session missing from output:\n%s", out)
	}

	out, err = env.run(t, "history", session.ID)
	if err != nil {
		t.Fatalf("history <id>: %v", err)
	}
	if !strings.Contains(out, "track1.wav") || !strings.Contains(out, "ripped") {
		t.Fatalf("track missing from output:\n%s", out)
	}

	if _, err := env.run(t, "history", "missing"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "audiorip.toml")

	run := func(args ...string) error {
		cmd := newRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"config", "init", "--path", target}, args...))
		return cmd.Execute()
	}
	if err := run(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if err := run(); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if err := run("--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowAppliesDeviceFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	out, err := env.run(t, "-d", "/dev/sr7", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "/dev/sr7") || !strings.Contains(out, env.catalog) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRenderStatusLinePlain(t *testing.T) {
	got := renderStatusLine("Drive", statusOK, "/dev/sr0", false)
	if got != "  Drive:             [OK] /dev/sr0" {
		t.Fatalf("got %q", got)
	}
	if colored := renderStatusLine("Drive", statusError, "", true); !strings.HasPrefix(colored, ansiRed) {
		t.Fatalf("expected red prefix, got %q", colored)
	}
}

func TestProgressReporterTrackLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		reporter *progressReporter
		want     slog.Level
	}{
		{"non-terminal writer", newProgressReporter(&bytes.Buffer{}, true), slog.LevelInfo},
		{"disabled by flags", newProgressReporter(&bytes.Buffer{}, false), slog.LevelInfo},
		{"bar drawing", &progressReporter{w: &bytes.Buffer{}, enabled: true}, slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reporter.trackLogLevel(); got != tt.want {
				t.Fatalf("trackLogLevel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveKindPrefersFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := newCommandContext(&globalFlags{config: env.configPath})
	cfg, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}
	kind, err := resolveKind(cfg, "")
	if err != nil || kind != container.Wave {
		t.Fatalf("default kind = %v, %v", kind, err)
	}
	kind, err = resolveKind(cfg, "RAW")
	if err != nil || kind != container.Raw {
		t.Fatalf("flag kind = %v, %v", kind, err)
	}
	if _, err := resolveKind(cfg, "flac"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{context.Canceled, exitInterrupted},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
