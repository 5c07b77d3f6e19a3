package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
)

var (
	sessionMetaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		MarginBottom(1)
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation so far",
	Long: `Show the persisted conversation, oldest first.

Use --limit to show only the most recent messages.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		messages := s.assistant.Conversation.Replay()
		if len(messages) == 0 {
			fmt.Fprintln(out, "No conversation yet.")
			return nil
		}

		total := len(messages)
		if historyLimit > 0 && historyLimit < total {
			messages = messages[total-historyLimit:]
		}

		fmt.Fprintln(out, sessionMetaStyle.Render(fmt.Sprintf("Showing %d of %d message(s), %d product(s) selected",
			len(messages), total, s.assistant.Selection.Len())))
		for _, msg := range messages {
			printMessage(out, msg.Role, msg.Content)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show only the last N messages (0 shows all)")
	rootCmd.AddCommand(historyCmd)
}
