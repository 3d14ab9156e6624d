package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jenconf/jenconf/pkg/mutators"
	"github.com/jenconf/jenconf/pkg/state"
	"github.com/jenconf/jenconf/pkg/telemetry"
)

func newTestReconciler(t *testing.T, homeDir string, dryRun bool) *Reconciler {
	t.Helper()
	r, err := New(Config{HomeDir: homeDir, DryRun: dryRun}, telemetry.Disabled())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func writeConfig(t *testing.T, homeDir, name, content string) string {
	t.Helper()
	path := filepath.Join(homeDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func readConfig(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	return string(raw)
}

func dockerCloudMutator(t *testing.T, name, serverURL string) mutators.Mutator {
	t.Helper()
	return mutators.NewDockerCloud(name, mutators.DockerCloudParams{ServerURL: serverURL})
}

func TestReconcileAppliesDockerCloud(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "config.xml", "<hudson/>")

	r := newTestReconciler(t, home, false)
	out := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")

	if out.Result != StatusApplied {
		t.Fatalf("Expected applied, got %s (%s)", out.Result, out.Comment)
	}
	if out.Comment != "updated configuration file config.xml" {
		t.Errorf("Unexpected comment %q", out.Comment)
	}
	if len(out.Changes) == 0 {
		t.Error("Expected a non-empty diff")
	}
	if out.RunID == "" {
		t.Error("Expected a run id")
	}

	raw := readConfig(t, path)
	for _, want := range []string{
		`plugin="docker-plugin@0.15.0"`,
		"<name>build1</name>",
		"<serverUrl>http://d:2376</serverUrl>",
		"<containerCap>100</containerCap>",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("Written config missing %q:\n%s", want, raw)
		}
	}
}

func TestReconcileDryRunLeavesFileUntouched(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "config.xml", "<hudson/>")
	before := readConfig(t, path)

	r := newTestReconciler(t, home, true)
	out := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")

	if out.Result != StatusPreviewed {
		t.Fatalf("Expected previewed, got %s (%s)", out.Result, out.Comment)
	}
	if !strings.HasPrefix(out.Comment, "would ") {
		t.Errorf("Preview comment should start with 'would ', got %q", out.Comment)
	}
	if readConfig(t, path) != before {
		t.Error("Dry run modified the on-disk file")
	}

	// The preview diff lists exactly what apply mode would write.
	applied := newTestReconciler(t, home, false).
		Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")
	if applied.Result != StatusApplied {
		t.Fatalf("Apply after preview failed: %s", applied.Comment)
	}
	if strings.Join(out.Changes, "\n") != strings.Join(applied.Changes, "\n") {
		t.Errorf("Preview diff differs from apply diff:\npreview:\n%s\napply:\n%s",
			strings.Join(out.Changes, "\n"), strings.Join(applied.Changes, "\n"))
	}
}

func TestReconcileMissingFile(t *testing.T) {
	r := newTestReconciler(t, t.TempDir(), false)
	out := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")

	if out.Result != StatusFailed {
		t.Fatalf("Expected failed, got %s", out.Result)
	}
	if !strings.Contains(out.Comment, "not found in Jenkins home directory") {
		t.Errorf("Unexpected comment %q", out.Comment)
	}
	if len(out.Changes) != 0 {
		t.Error("Failed invocation should carry no diff")
	}
}

func TestReconcileMalformedFile(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "config.xml", "<hudson><clouds></hudson>")
	before := readConfig(t, path)

	r := newTestReconciler(t, home, false)
	out := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")

	if out.Result != StatusFailed {
		t.Fatalf("Expected failed, got %s", out.Result)
	}
	if out.Comment != "failed to parse configuration file config.xml" {
		t.Errorf("Unexpected comment %q", out.Comment)
	}
	if readConfig(t, path) != before {
		t.Error("Parse failure modified the on-disk file")
	}
}

func TestReconcileRootTagMismatch(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "config.xml", "<project/>")
	before := readConfig(t, path)

	r := newTestReconciler(t, home, false)
	out := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")

	if out.Result != StatusFailed {
		t.Fatalf("Expected failed, got %s", out.Result)
	}
	if out.Comment != "root element is not the <hudson> tag" {
		t.Errorf("Unexpected comment %q", out.Comment)
	}
	if readConfig(t, path) != before {
		t.Error("Schema mismatch modified the on-disk file")
	}
}

func TestReconcileAdminEmailConverges(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "jenkins.model.JenkinsLocationConfiguration.xml",
		"<jenkins.model.JenkinsLocationConfiguration/>")

	r := newTestReconciler(t, home, false)
	for _, addr := range []string{"ops@example.com", "new@example.com"} {
		m, err := mutators.NewAdminEmail(addr, "")
		if err != nil {
			t.Fatalf("NewAdminEmail failed: %v", err)
		}
		out := r.Reconcile(context.Background(), m, "")
		if out.Result != StatusApplied {
			t.Fatalf("Expected applied for %s, got %s (%s)", addr, out.Result, out.Comment)
		}
		if out.Conffile != "jenkins.model.JenkinsLocationConfiguration.xml" {
			t.Errorf("Default conffile not applied, got %q", out.Conffile)
		}
	}

	raw := readConfig(t, path)
	if got := strings.Count(raw, "<adminAddress>"); got != 1 {
		t.Errorf("Expected exactly one adminAddress element, got %d:\n%s", got, raw)
	}
	if !strings.Contains(raw, "<adminAddress>new@example.com</adminAddress>") {
		t.Errorf("Expected the latest address:\n%s", raw)
	}
}

func TestReconcileReapplyYieldsEmptyDiff(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "config.xml", "<hudson/>")

	r := newTestReconciler(t, home, false)
	first := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")
	if first.Result != StatusApplied || len(first.Changes) == 0 {
		t.Fatalf("First apply unexpected: %s, %d changes", first.Result, len(first.Changes))
	}
	second := r.Reconcile(context.Background(), dockerCloudMutator(t, "build1", "http://d:2376"), "config.xml")
	if second.Result != StatusApplied {
		t.Fatalf("Second apply failed: %s", second.Comment)
	}
	if len(second.Changes) != 0 {
		t.Errorf("Re-apply should converge to an empty diff, got:\n%s", strings.Join(second.Changes, "\n"))
	}
}

func TestReconcileAll(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "config.xml", "<hudson/>")
	writeConfig(t, home, "jenkins.model.JenkinsLocationConfiguration.xml",
		"<jenkins.model.JenkinsLocationConfiguration/>")

	f, err := state.Parse([]byte(`
resources:
  - name: build1
    type: dockercloud
    params:
      server_url: http://d:2376
  - name: ops@example.com
    type: adminemail
  - name: broken
    type: dockercloud
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := newTestReconciler(t, home, false)
	outcomes := r.ReconcileAll(context.Background(), f.Resources)
	if len(outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Result != StatusApplied || outcomes[1].Result != StatusApplied {
		t.Errorf("Expected the valid resources to apply, got %s and %s",
			outcomes[0].Result, outcomes[1].Result)
	}
	if outcomes[2].Result != StatusFailed {
		t.Errorf("Expected the broken resource to fail, got %s", outcomes[2].Result)
	}
}

func TestReconcileAllStopsOnCancel(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "config.xml", "<hudson/>")

	f, err := state.Parse([]byte(`
resources:
  - name: build1
    type: dockercloud
    params:
      server_url: http://d:2376
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newTestReconciler(t, home, false)
	if outcomes := r.ReconcileAll(ctx, f.Resources); len(outcomes) != 0 {
		t.Errorf("Expected no outcomes after cancellation, got %d", len(outcomes))
	}
}

func TestNewRequiresHomeDir(t *testing.T) {
	if _, err := New(Config{}, telemetry.Disabled()); err == nil {
		t.Fatal("Expected error for empty home directory")
	}
}
