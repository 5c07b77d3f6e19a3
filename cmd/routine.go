package cmd

import (
	"fmt"

	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Request a routine for the selected products",
	Long: `Ask the assistant for a step-by-step routine using the selected products.

Steps the reply mentions but the selection does not cover are matched
against the catalogue and offered as suggestions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		var result *internal.RoutineResult
		message := fmt.Sprintf("Building a routine from %d product(s)", s.assistant.Selection.Len())
		err = internal.ShowProgress(cmd.Context(), message, func() error {
			var routineErr error
			result, routineErr = s.assistant.GenerateRoutine(cmd.Context())
			return routineErr
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printMessage(out, internal.RoleAssistant, result.Reply)
		if len(result.Suggestions) == 0 {
			internal.PrintInfo("Your selection covers every step of this routine")
			return nil
		}
		printSuggestions(out, result.Suggestions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routineCmd)
}
