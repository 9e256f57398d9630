package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecuteAll(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()
	vars := Variables{Dir: workDir, Title: "orders", ConversationID: "c1"}

	tests := []struct {
		name     string
		hooks    []*HookConfig
		expected string
	}{
		{
			name:     "no hooks",
			hooks:    []*HookConfig{},
			expected: "",
		},
		{
			name: "single hook",
			hooks: []*HookConfig{
				{Command: "echo 'formatted'", Timeout: 5},
			},
			expected: "formatted\n",
		},
		{
			name: "variables expanded",
			hooks: []*HookConfig{
				{Command: "echo {{title}} {{conversation}}", Timeout: 5},
			},
			expected: "orders c1\n",
		},
		{
			name: "silent hook skipped in output",
			hooks: []*HookConfig{
				{Command: "echo 'first'", Timeout: 5},
				{Command: "true", Timeout: 5},
				{Command: "echo 'second'", Timeout: 5},
			},
			expected: "first\n\nsecond\n",
		},
		{
			name:     "nil and empty commands ignored",
			hooks:    []*HookConfig{nil, {Command: ""}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := ExecuteAll(ctx, tt.hooks, workDir, vars)
			if err != nil {
				t.Fatalf("ExecuteAll() error = %v", err)
			}
			if output != tt.expected {
				t.Errorf("ExecuteAll() output = %q, expected %q", output, tt.expected)
			}
		})
	}
}

func TestExecute_FailureIsReportedInOutput(t *testing.T) {
	out, err := Execute(context.Background(), &HookConfig{Command: "echo oops >&2; exit 3"}, t.TempDir(), Variables{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "[Hook command failed") || !strings.Contains(out, "oops") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestExecute_TimeoutIsReportedInOutput(t *testing.T) {
	hook := &HookConfig{Command: "echo partial; exec sleep 5", Timeout: 1}

	start := time.Now()
	out, err := Execute(context.Background(), hook, t.TempDir(), Variables{})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil on timeout", err)
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Errorf("Execute() took %v, want it bounded by the hook timeout", elapsed)
	}
	if !strings.Contains(out, "[Hook timed out after 1s]") {
		t.Errorf("expected timeout marker, got %q", out)
	}
	if !strings.Contains(out, "partial") {
		t.Errorf("expected partial output to be kept, got %q", out)
	}
}

func TestExecuteAll_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	hooks := []*HookConfig{
		{Command: "echo 'test'", Timeout: 5},
	}

	_, err := ExecuteAll(ctx, hooks, t.TempDir(), Variables{})
	if err == nil {
		t.Error("ExecuteAll() expected error for cancelled context, got nil")
	}
}

func TestRunPostExport(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	exportDir := t.TempDir()

	// Without a hooks file nothing runs.
	out, err := RunPostExport(context.Background(), exportDir, Variables{})
	if err != nil || out != "" {
		t.Fatalf("RunPostExport() = %q, %v; want no-op", out, err)
	}

	cfg := "version: 1\nhooks:\n  post_export:\n    - command: touch marker && echo {{dir}}\n"
	if err := os.WriteFile(filepath.Join(cwd, ConfigFileName), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	out, err = RunPostExport(context.Background(), exportDir, Variables{Title: "t"})
	if err != nil {
		t.Fatalf("RunPostExport() error = %v", err)
	}
	if strings.TrimSpace(out) != exportDir {
		t.Errorf("expected {{dir}} to expand to %q, got %q", exportDir, out)
	}
	if _, err := os.Stat(filepath.Join(exportDir, "marker")); err != nil {
		t.Errorf("hook did not run inside the export dir: %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hooks: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected parse error")
	}
}
