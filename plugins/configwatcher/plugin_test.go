package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/probewatch/pkg/probewatch"
)

// fakeReports records the toggles it receives.
type fakeReports struct {
	mu          sync.Mutex
	probeReport *bool
	diagnostics *bool
	showSSID    *bool
}

func (f *fakeReports) SetProbeReport(on bool) { f.set(&f.probeReport, on) }
func (f *fakeReports) SetDiagnostics(on bool) { f.set(&f.diagnostics, on) }
func (f *fakeReports) SetShowSSID(on bool)    { f.set(&f.showSSID, on) }

func (f *fakeReports) set(dst **bool, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*dst = &on
}

func (f *fakeReports) get(src **bool) *bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *src
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func waitReloads(t *testing.T, p *Plugin, n uint64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for p.Reloads() < n {
		if time.Now().After(deadline) {
			t.Fatalf("reloads = %d, want %d", p.Reloads(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func startPlugin(t *testing.T, cfg Config, path string, reports probewatch.ReportControl) (*Plugin, *[]string) {
	t.Helper()
	p := New(cfg)
	var levels []string
	var mu sync.Mutex
	p.applyLevel = func(level string) error {
		mu.Lock()
		defer mu.Unlock()
		levels = append(levels, level)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Initialize(ctx, probewatch.PluginConfig{ConfigPath: path, Reports: reports}); err != nil {
		cancel()
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		_ = p.Shutdown(context.Background())
	})
	return p, &levels
}

func TestPlugin_ReloadsToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "probe_report = true\n")

	reports := &fakeReports{}
	p, levels := startPlugin(t, Config{DebounceDelay: 50 * time.Millisecond}, path, reports)

	writeConfig(t, path, "probe_report = false\ndiagnostics = true\nlog_level = \"warn\"\n")
	waitReloads(t, p, 1)

	if v := reports.get(&reports.probeReport); v == nil || *v {
		t.Errorf("probe_report = %v, want false", v)
	}
	if v := reports.get(&reports.diagnostics); v == nil || !*v {
		t.Errorf("diagnostics = %v, want true", v)
	}
	if v := reports.get(&reports.showSSID); v != nil {
		t.Errorf("show_ssid absent from file but set to %v", *v)
	}
	if len(*levels) == 0 || (*levels)[len(*levels)-1] != "warn" {
		t.Errorf("log levels applied = %v", *levels)
	}
}

func TestPlugin_PinnedKeysAreKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "")

	reports := &fakeReports{}
	p, _ := startPlugin(t, Config{
		DebounceDelay: 50 * time.Millisecond,
		Pinned:        map[string]bool{KeyShowSSID: true},
	}, path, reports)

	writeConfig(t, path, "show_ssid = true\ndiagnostics = false\n")
	waitReloads(t, p, 1)

	if v := reports.get(&reports.showSSID); v != nil {
		t.Errorf("pinned show_ssid changed to %v", *v)
	}
	if v := reports.get(&reports.diagnostics); v == nil || *v {
		t.Errorf("diagnostics = %v, want false", v)
	}
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, "")

	reports := &fakeReports{}
	p, _ := startPlugin(t, Config{DebounceDelay: 50 * time.Millisecond}, path, reports)

	writeConfig(t, filepath.Join(dir, "other.toml"), "probe_report = false\n")
	time.Sleep(300 * time.Millisecond)

	if p.Reloads() != 0 {
		t.Errorf("reloads = %d after writing an unrelated file", p.Reloads())
	}
}

func TestPlugin_InvalidFileKeepsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "")

	reports := &fakeReports{}
	p, _ := startPlugin(t, Config{DebounceDelay: 50 * time.Millisecond}, path, reports)

	writeConfig(t, path, "probe_report = \n")
	time.Sleep(300 * time.Millisecond)
	if p.Reloads() != 0 {
		t.Fatalf("reloads = %d for an unparsable file", p.Reloads())
	}

	writeConfig(t, path, "probe_report = false\n")
	waitReloads(t, p, 1)
	if v := reports.get(&reports.probeReport); v == nil || *v {
		t.Errorf("probe_report = %v, want false", v)
	}
}

func TestPlugin_DisabledWithoutPath(t *testing.T) {
	p := New(DefaultConfig())
	if err := p.Initialize(context.Background(), probewatch.PluginConfig{Reports: &fakeReports{}}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestPlugin_Name(t *testing.T) {
	if got := New(DefaultConfig()).Name(); got != "configwatcher" {
		t.Errorf("Name = %q", got)
	}
}
