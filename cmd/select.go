package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	clearYes bool
)

var selectCmd = &cobra.Command{
	Use:   "select <id>...",
	Short: "Select or deselect products",
	Long: `Toggle products in the selection by catalogue id or SKU.

A product that is already selected is deselected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		for _, id := range args {
			p, selected, err := s.assistant.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if selected {
				fmt.Fprintf(out, "%s %s (%s)\n", countStyle.Render("Selected"), p.Name, idStyle.Render(p.ID))
			} else {
				fmt.Fprintf(out, "%s %s (%s)\n", brandStyle.Render("Deselected"), p.Name, idStyle.Render(p.ID))
			}
		}
		fmt.Fprintf(out, "%d product(s) selected\n", s.assistant.Selection.Len())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a product from the selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		id := strings.TrimSpace(args[0])
		if !s.assistant.Selection.Remove(id) {
			return fmt.Errorf("product %q is not selected", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s, %d product(s) selected\n",
			idStyle.Render(id), s.assistant.Selection.Len())
		return nil
	},
}

var selectedCmd = &cobra.Command{
	Use:   "selected",
	Short: "Show the selected products",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		selected := s.assistant.Selection.List()
		if len(selected) == 0 {
			fmt.Fprintln(out, "No products selected.")
			return nil
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Selected products (%d)", len(selected))))
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		for _, p := range selected {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				idStyle.Render(p.ID),
				titleStyle.Render(p.Name),
				brandStyle.Render(p.Brand),
				p.Category)
		}
		return w.Flush()
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every selected product",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return errors.New("refusing to clear the selection without --yes")
		}
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		s.assistant.ClearSelection()
		internal.PrintSuccess("Selection cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm clearing the selection")

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(selectedCmd)
	rootCmd.AddCommand(clearCmd)
}
