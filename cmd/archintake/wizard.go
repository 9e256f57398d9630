package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/debuggies/archintake/internal/logger"
	"github.com/debuggies/archintake/internal/tui/intakewizard"
	"github.com/spf13/cobra"
)

var wizardFlags struct {
	chatID string
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the interactive intake wizard",
	Long: `Run the interactive intake wizard.

The wizard asks for the current state of your application, your industry,
cloud provider and environment, then submits the answers and previews the
generated architecture. Confirming the preview forwards it to the project
endpoint and writes the artifacts to the export directory when configured.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVar(&wizardFlags.chatID, "chat-id", "", "Continue an existing workflow conversation")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, shutdown, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := intakewizard.Run(ctx, intakewizard.Options{
		Client:         client,
		ExportDir:      cfg.ExportDir,
		ConversationID: wizardFlags.chatID,
	})
	switch {
	case errors.Is(err, intakewizard.ErrCancelled):
		logger.Debug("Wizard closed (confirmed=%t)", result.Confirmed)
	case err != nil:
		return err
	}

	if result.ExportedTo != "" {
		fmt.Printf("Artifacts written to: %s\n", result.ExportedTo)
	}
	if result.ConversationID != "" {
		fmt.Printf("Conversation: %s\n", result.ConversationID)
	}
	return nil
}
