// Package artifacts writes a review's generated artifacts to disk.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/logger"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file listing what an export contains.
const ManifestName = "manifest.yml"

// Manifest describes one export.
type Manifest struct {
	Title          string            `yaml:"title"`
	CreatedAt      time.Time         `yaml:"created_at"`
	ConversationID string            `yaml:"conversation_id,omitempty"`
	Inputs         intake.FormValues `yaml:"inputs"`
	Files          []string          `yaml:"files"`
}

// Export writes each non-empty artifact of review into dir/<slug(title)>/
// together with a manifest, and returns the directory written. Artifact
// files left by an earlier export that this review does not carry are
// removed, so the directory always matches the manifest.
func Export(dir, title string, values intake.FormValues, review intake.ReviewModel, conversationID string) (string, error) {
	if review.IsEmpty() {
		return "", fmt.Errorf("nothing to export: review has no artifacts")
	}

	name := slug.Make(title)
	if name == "" {
		name = "architecture"
	}
	target := filepath.Join(dir, name)
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"functional.mmd", review.FunctionalDiagram},
		{"infrastructure.mmd", review.InfrastructureDiagram},
		{"rationale.md", review.Rationale},
		{"main.tf", review.GeneratedCode},
		{"decision-record.md", review.DecisionRecord},
	}

	manifest := Manifest{
		Title:          title,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
		ConversationID: conversationID,
		Inputs:         values,
	}
	for _, f := range files {
		path := filepath.Join(target, f.name)
		if strings.TrimSpace(f.content) == "" {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return "", fmt.Errorf("failed to remove stale %s: %w", f.name, err)
			}
			continue
		}
		logger.Debug("Writing artifact %s", path)
		if err := os.WriteFile(path, []byte(ensureNewline(f.content)), 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		manifest.Files = append(manifest.Files, f.name)
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, ManifestName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return target, nil
}

// Title derives an export title from the first line of the actual state.
func Title(values intake.FormValues) string {
	line := strings.TrimSpace(values.ActualState)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	r := []rune(line)
	if len(r) > 60 {
		line = string(r[:60])
	}
	return line
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
