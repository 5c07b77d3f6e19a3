package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	listCategory string
	listSearch   string
	listAll      bool
	listReload   bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	brandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the product catalogue",
	Long:  `Browse the product catalogue the assistant is restricted to.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogue products",
	Long: `List catalogue products filtered by category and free text.

The search matches name, brand and description. Without --category or
--search nothing is listed; use --all to list the whole catalogue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		catalog := s.assistant.Catalog
		var products []internal.Product
		if listReload {
			products, err = catalog.Reload(cmd.Context())
		} else {
			products, err = catalog.Load(cmd.Context())
		}
		if err != nil {
			return err
		}

		shown := products
		if !listAll {
			shown = internal.Filter(products, listCategory, listSearch)
		}

		out := cmd.OutOrStdout()
		if len(shown) == 0 {
			if !listAll && listCategory == "" && listSearch == "" {
				fmt.Fprintln(out, "Choose a --category or --search to browse the catalogue (or --all).")
				return nil
			}
			fmt.Fprintln(out, "No products found.")
			return nil
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Products (%d of %d)", len(shown), len(products))))
		fmt.Fprintln(out)
		displayProducts(out, shown, s.assistant.Selection)
		return nil
	},
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalogue categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		products, err := s.assistant.Catalog.Load(cmd.Context())
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		for _, p := range products {
			counts[p.Category]++
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, headerStyle.Render("CATEGORY")+"\t"+headerStyle.Render("GROUP")+"\t"+headerStyle.Render("PRODUCTS"))
		for _, c := range internal.Categories(products) {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
				titleStyle.Render(c),
				idStyle.Render(internal.CategoryGroup(c)),
				countStyle.Render(fmt.Sprintf("%d", counts[c])))
		}
		return w.Flush()
	},
}

// displayProducts prints products as a table, marking selected ones
func displayProducts(out io.Writer, products []internal.Product, selection *internal.Selection) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, " \t"+headerStyle.Render("ID")+"\t"+headerStyle.Render("NAME")+"\t"+
		headerStyle.Render("BRAND")+"\t"+headerStyle.Render("CATEGORY"))

	for _, p := range products {
		mark := " "
		if selection != nil && selection.Has(p.ID) {
			mark = countStyle.Render("*")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			mark,
			idStyle.Render(p.ID),
			titleStyle.Render(p.Name),
			brandStyle.Render(p.Brand),
			p.Category)
	}
	_ = w.Flush()
}

func init() {
	catalogListCmd.Flags().StringVar(&listCategory, "category", "", "Only list products in this category")
	catalogListCmd.Flags().StringVar(&listSearch, "search", "", "Only list products matching this text")
	catalogListCmd.Flags().BoolVar(&listAll, "all", false, "List the whole catalogue")
	catalogListCmd.Flags().BoolVar(&listReload, "reload", false, "Fetch the catalogue again instead of using the cached copy")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCategoriesCmd)
	rootCmd.AddCommand(catalogCmd)
}
