package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/dompet/internal/app"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var flagAdviceRaw bool

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Ask the advisor for tips based on your recent transactions",
	RunE:  runAdvice,
}

func init() {
	adviceCmd.Flags().BoolVar(&flagAdviceRaw, "raw", false, "Print the answer without markdown rendering")
	rootCmd.AddCommand(adviceCmd)
}

func runAdvice(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app.App) error {
		if a.Advisor.Configured() {
			fmt.Fprintln(os.Stderr, "  Asking the advisor...")
		}
		text := a.Advisor.Advise(cmd.Context(), a.Ledger.List())

		if flagAdviceRaw {
			fmt.Println(text)
			return nil
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			fmt.Println(text)
			return nil
		}
		out, err := r.Render(text)
		if err != nil {
			fmt.Println(text)
			return nil
		}
		fmt.Print(out)
		return nil
	})
}
