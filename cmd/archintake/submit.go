package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/debuggies/archintake/internal/artifacts"
	"github.com/debuggies/archintake/internal/hooks"
	"github.com/debuggies/archintake/internal/intake"
	"github.com/debuggies/archintake/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var submitFlags struct {
	actualState   string
	industry      string
	cloud         string
	environment   string
	chatID        string
	export        bool
	createProject bool
	format        string
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an intake without the TUI",
	Long: `Submit an intake without the TUI and print the generated architecture.

Pass --actual-state - to read the description from stdin. Choice fields
default to the same values as the wizard.`,
	Example: `  archintake submit --actual-state "Monolith on one VM with PostgreSQL"
  cat state.md | archintake submit --actual-state - --format json`,
	RunE: runSubmit,
}

func init() {
	f := submitCmd.Flags()
	f.StringVarP(&submitFlags.actualState, "actual-state", "a", "", "Current state of your application (- for stdin)")
	f.StringVar(&submitFlags.industry, "industry", intake.DefaultIndustry, "Industry")
	f.StringVar(&submitFlags.cloud, "cloud", intake.DefaultCloud, "Cloud provider")
	f.StringVar(&submitFlags.environment, "environment", intake.DefaultEnvironment, "Target environment")
	f.StringVar(&submitFlags.chatID, "chat-id", "", "Continue an existing workflow conversation")
	f.BoolVar(&submitFlags.export, "export", false, "Write artifacts to the export directory")
	f.BoolVar(&submitFlags.createProject, "create-project", false, "Forward the result to the project endpoint")
	f.StringVarP(&submitFlags.format, "format", "o", "markdown", "Output format: markdown, json, yaml")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if submitFlags.export && cfg.ExportDir == "" {
		return fmt.Errorf("--export needs an export directory\n\nSet it via --export-dir or ARCHINTAKE_EXPORT_DIR")
	}
	if submitFlags.createProject && cfg.ProjectURL == "" {
		return fmt.Errorf("--create-project needs project_url to be configured")
	}

	actualState := submitFlags.actualState
	if actualState == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		actualState = string(data)
	}

	session, err := newHeadlessSession(actualState, submitFlags.industry, submitFlags.cloud, submitFlags.environment)
	if err != nil {
		return err
	}
	session.SetConversationID(submitFlags.chatID)

	client, shutdown, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Submit(ctx, client); err != nil {
		if errors.Is(err, intake.ErrInvalid) {
			return formatFieldErrors(session.Form.Errors())
		}
		return err
	}

	review, _ := session.Review()
	out := cmd.OutOrStdout()
	if err := writeReview(out, submitFlags.format, review, session.ConversationID()); err != nil {
		return err
	}

	if submitFlags.export {
		values := session.Form.Values()
		title := artifacts.Title(values)
		dir, err := artifacts.Export(cfg.ExportDir, title, values, review, session.ConversationID())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Artifacts written to: %s\n", dir)
		hookOut, err := hooks.RunPostExport(ctx, dir, hooks.Variables{Title: title, ConversationID: session.ConversationID()})
		if err != nil {
			logger.Warn("post_export hook: %v", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: post_export hook skipped: %v\n", err)
		} else if hookOut != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimRight(hookOut, "\n"))
		}
	}

	if submitFlags.createProject {
		body, err := client.CreateProject(ctx, review)
		if err != nil {
			return err
		}
		logger.Info("Project created")
		fmt.Fprintf(cmd.ErrOrStderr(), "Project created: %s\n", strings.TrimSpace(string(body)))
	}
	return nil
}

// newHeadlessSession builds a session positioned on the review step with
// the given answers. Choices outside the available catalogue are rejected
// the same way the wizard refuses to select them.
func newHeadlessSession(actualState, industry, cloud, environment string) (*intake.Session, error) {
	session := intake.NewSession()
	answers := []struct {
		field intake.Field
		value string
	}{
		{intake.FieldActualState, actualState},
		{intake.FieldIndustry, industry},
		{intake.FieldCloud, cloud},
		{intake.FieldEnvironment, environment},
	}
	for _, a := range answers {
		if o, ok := intake.LookupOption(a.field, a.value); ok && !o.Selectable() {
			return nil, fmt.Errorf("%s %q is not available", a.field, a.value)
		}
		if err := session.Form.SetField(a.field, a.value); err != nil {
			return nil, err
		}
	}
	for session.Next() {
	}
	return session, nil
}

func formatFieldErrors(errs intake.FieldErrors) error {
	var b strings.Builder
	b.WriteString("invalid input")
	for _, f := range intake.Fields() {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(&b, "\n  %s: %s", f, msg)
		}
	}
	return fmt.Errorf("%s: %w", b.String(), intake.ErrInvalid)
}

// reviewOutput is the machine-readable form of a submission.
type reviewOutput struct {
	ConversationID string             `json:"conversationId,omitempty" yaml:"conversation_id,omitempty"`
	Review         intake.ReviewModel `json:"review" yaml:"review"`
}

func writeReview(w io.Writer, format string, review intake.ReviewModel, conversationID string) error {
	out := reviewOutput{ConversationID: conversationID, Review: review}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "markdown", "md", "":
		_, err := io.WriteString(w, reviewMarkdown(review, conversationID))
		return err
	}
	return fmt.Errorf("unknown format %q (want markdown, json or yaml)", format)
}

func reviewMarkdown(review intake.ReviewModel, conversationID string) string {
	var b strings.Builder
	section := func(title, body, fence string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		body = strings.TrimRight(body, "\n")
		if fence != "" {
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", fence, body)
			return
		}
		b.WriteString(body + "\n\n")
	}
	section("Functional diagram", review.FunctionalDiagram, "mermaid")
	section("Infrastructure diagram", review.InfrastructureDiagram, "mermaid")
	section("Summary", review.Rationale, "")
	section("Terraform", review.GeneratedCode, "hcl")
	section("Decision record", review.DecisionRecord, "")
	if conversationID != "" {
		fmt.Fprintf(&b, "_Conversation: %s_\n", conversationID)
	}
	return b.String()
}
