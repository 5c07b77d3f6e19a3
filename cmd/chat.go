package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	suggestionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))
)

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Ask the assistant a question",
	Long: `Send a message to the assistant. The conversation so far and the
catalogue are sent with it, and the reply is added to the history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return internal.ErrEmptyMessage
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		var reply string
		err = internal.ShowProgress(cmd.Context(), "Waiting for the assistant", func() error {
			var chatErr error
			reply, chatErr = s.assistant.Chat(cmd.Context(), text)
			return chatErr
		})
		if err != nil {
			return err
		}

		printMessage(cmd.OutOrStdout(), internal.RoleAssistant, reply)
		return nil
	},
}

// printMessage prints one transcript message with its speaker label
func printMessage(out io.Writer, role, content string) {
	if role == internal.RoleAssistant {
		content = internal.CleanAssistantText(content)
	}
	fmt.Fprintln(out, internal.RoleLabel(out, role))
	fmt.Fprintln(out, messageContentStyle.Render(content))
}

// printSuggestions prints suggested catalogue additions
func printSuggestions(out io.Writer, suggestions []internal.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(out, suggestionHeaderStyle.Render("Suggested additions from the catalogue:"))
	for _, sg := range suggestions {
		fmt.Fprintf(out, "  %s: %s (%s) %s\n",
			sg.Category,
			titleStyle.Render(sg.Product.Name),
			brandStyle.Render(sg.Product.Brand),
			idStyle.Render("id "+sg.Product.ID))
	}
	fmt.Fprintln(out, "Use 'routine-assistant select <id>' to add one.")
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
