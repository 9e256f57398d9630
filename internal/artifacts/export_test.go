package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/debuggies/archintake/internal/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleValues() intake.FormValues {
	v := intake.DefaultValues()
	v.ActualState = "Migrate monolith to microservices\nRuns on two VMs."
	return v
}

func TestExport_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	review := intake.ReviewModel{
		FunctionalDiagram:     "graph TD; A-->B",
		InfrastructureDiagram: "graph LR; ALB-->ECS",
		Rationale:             "Use AWS ECS",
		GeneratedCode:         `resource "aws_ecs_cluster" "main" {}`,
		DecisionRecord:        "# ADR-001",
	}

	path, err := Export(dir, "Migrate monolith to microservices", sampleValues(), review, "chat-9")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "migrate-monolith-to-microservices"), path)

	tf, err := os.ReadFile(filepath.Join(path, "main.tf"))
	require.NoError(t, err)
	assert.Equal(t, "resource \"aws_ecs_cluster\" \"main\" {}\n", string(tf))

	data, err := os.ReadFile(filepath.Join(path, ManifestName))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, "chat-9", m.ConversationID)
	assert.Equal(t, []string{"functional.mmd", "infrastructure.mmd", "rationale.md", "main.tf", "decision-record.md"}, m.Files)
	assert.Equal(t, "Finance", m.Inputs.Industry)
}

func TestExport_SkipsEmptyArtifacts(t *testing.T) {
	path, err := Export(t.TempDir(), "partial", sampleValues(), intake.ReviewModel{Rationale: "text only"}, "")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(path, "main.tf"))
	assert.True(t, os.IsNotExist(err), "empty terraform should not be written")
	_, err = os.Stat(filepath.Join(path, "rationale.md"))
	assert.NoError(t, err)
}

func TestExport_ReexportRemovesStaleArtifacts(t *testing.T) {
	dir := t.TempDir()
	first, err := Export(dir, "orders", sampleValues(), intake.ReviewModel{Rationale: "old rationale", GeneratedCode: "old tf"}, "")
	require.NoError(t, err)

	second, err := Export(dir, "orders", sampleValues(), intake.ReviewModel{GeneratedCode: "new tf"}, "")
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = os.Stat(filepath.Join(second, "rationale.md"))
	assert.True(t, os.IsNotExist(err), "rationale from the earlier export should be gone")

	tf, err := os.ReadFile(filepath.Join(second, "main.tf"))
	require.NoError(t, err)
	assert.Equal(t, "new tf\n", string(tf))

	data, err := os.ReadFile(filepath.Join(second, ManifestName))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, []string{"main.tf"}, m.Files)
}

func TestExport_EmptyReview(t *testing.T) {
	_, err := Export(t.TempDir(), "x", sampleValues(), intake.ReviewModel{}, "")
	assert.Error(t, err)
}

func TestExport_UnsluggableTitle(t *testing.T) {
	path, err := Export(t.TempDir(), "!!!", sampleValues(), intake.ReviewModel{Rationale: "r"}, "")
	require.NoError(t, err)
	assert.Equal(t, "architecture", filepath.Base(path))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Migrate monolith to microservices", Title(sampleValues()))
	assert.Equal(t, "", Title(intake.FormValues{}))
}
