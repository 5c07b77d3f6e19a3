package cmd

import (
	"errors"

	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	restartYes bool
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Start a new conversation",
	Long: `Delete the conversation history. The product selection is kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !restartYes {
			return errors.New("refusing to delete the conversation without --yes")
		}
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		s.assistant.Restart()
		internal.PrintSuccess("Conversation restarted")
		return nil
	},
}

func init() {
	restartCmd.Flags().BoolVar(&restartYes, "yes", false, "Confirm deleting the conversation")
	rootCmd.AddCommand(restartCmd)
}
