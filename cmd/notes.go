package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/notes"

	"github.com/spf13/cobra"
)

var (
	flagNoteTitle   string
	flagNoteContent string
	flagNoteColor   string
	flagNotePrivate bool
	flagNotePublic  bool
	flagNotePIN     string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Coloured notes, optionally private behind a PIN",
	RunE:  runNotesList,
}

var notesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	RunE:  runNotesAdd,
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesEdit,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes; private content stays hidden",
	RunE:  runNotesList,
}

var notesOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Print a note, asking for the PIN if it is private",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesOpen,
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesRm,
}

func init() {
	for _, c := range []*cobra.Command{notesAddCmd, notesEditCmd} {
		c.Flags().StringVarP(&flagNoteTitle, "title", "t", "", "Note title")
		c.Flags().StringVarP(&flagNoteContent, "content", "m", "", "Note content")
		c.Flags().StringVar(&flagNoteColor, "color", "", "Palette colour: "+paletteNames())
		c.Flags().BoolVar(&flagNotePrivate, "private", false, "Require the PIN to open this note")
	}
	notesEditCmd.Flags().BoolVar(&flagNotePublic, "public", false, "Make the note public")
	notesCmd.PersistentFlags().StringVar(&flagNotePIN, "pin", "", "PIN to use instead of prompting")

	notesCmd.AddCommand(notesAddCmd, notesEditCmd, notesListCmd, notesOpenCmd, notesRmCmd)
	rootCmd.AddCommand(notesCmd)
}

func paletteNames() string {
	names := make([]string, len(config.NotePalette))
	for i, c := range config.NotePalette {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func noteColor(name string) (model.NoteColor, error) {
	if name == "" {
		return config.NotePalette[0], nil
	}
	c, ok := config.LookupNoteColor(strings.ToLower(name))
	if !ok {
		return model.NoteColor{}, fmt.Errorf("unknown colour %q (choose from %s)", name, paletteNames())
	}
	return c, nil
}

// saveNote saves d, running PIN setup first when a private note is saved
// before any PIN exists. A rejected PIN is asked for again.
func saveNote(nb *notes.Notebook, d notes.Draft) (model.Note, error) {
	n, err := nb.Save(d)
	if !errors.Is(err, notes.ErrPINRequired) {
		return n, err
	}

	fmt.Println("  Private notes need a PIN. Choose one now (at least 4 characters).")
	pending := nb.BeginPrivacyUpgrade(d)
	preset := flagNotePIN
	for {
		secret, err := promptSecret("New PIN", preset)
		if err != nil {
			nb.CancelPrivacyUpgrade()
			return model.Note{}, err
		}
		n, err = nb.CompleteSetup(pending.Token, secret)
		if errors.Is(err, notes.ErrPINTooShort) && preset == "" {
			fmt.Printf("  %v\n", err)
			continue
		}
		if err != nil {
			nb.CancelPrivacyUpgrade()
		}
		return n, err
	}
}

// openNote opens id, prompting for the PIN when the note is locked.
func openNote(nb *notes.Notebook, id string) (model.Note, error) {
	n, err := nb.Open(id)
	if !errors.Is(err, notes.ErrLocked) {
		return n, err
	}
	preset := flagNotePIN
	for {
		input, err := promptSecret("PIN", preset)
		if err != nil {
			nb.Guard().CancelUnlock()
			return model.Note{}, err
		}
		n, err = nb.Unlock(input)
		if errors.Is(err, notes.ErrWrongPIN) && preset == "" {
			fmt.Println("  Wrong PIN, try again.")
			continue
		}
		if err != nil {
			nb.Guard().CancelUnlock()
		}
		return n, err
	}
}

func runNotesAdd(cmd *cobra.Command, _ []string) error {
	color, err := noteColor(flagNoteColor)
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app.App) error {
		n, err := saveNote(a.Notes, notes.Draft{
			Title:     flagNoteTitle,
			Content:   flagNoteContent,
			Color:     color,
			IsPrivate: flagNotePrivate,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Saved note %s\n", cli.ShortID(n.ID))
		return nil
	})
}

func runNotesEdit(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		ref, ok := a.Notes.Resolve(args[0])
		if !ok {
			fmt.Printf("  No note matches %q.\n", args[0])
			return nil
		}
		n, err := openNote(a.Notes, ref.ID)
		if err != nil {
			return err
		}
		defer a.Notes.CloseEditor()

		d := notes.DraftOf(n)
		flags := cmd.Flags()
		if flags.Changed("title") {
			d.Title = flagNoteTitle
		}
		if flags.Changed("content") {
			d.Content = flagNoteContent
		}
		if flags.Changed("color") {
			if d.Color, err = noteColor(flagNoteColor); err != nil {
				return err
			}
		}
		if flagNotePrivate {
			d.IsPrivate = true
		}
		if flagNotePublic {
			d.IsPrivate = false
		}

		if _, err := saveNote(a.Notes, d); err != nil {
			return err
		}
		fmt.Printf("  Updated note %s\n", cli.ShortID(n.ID))
		return nil
	})
}

func runNotesList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app.App) error {
		list := a.Notes.List()
		if len(list) == 0 {
			fmt.Println("\n  No notes yet. Add one with `dompet notes add -t title -m text`.")
			return nil
		}
		locked := a.Notes.Guard().HasPIN()
		rows := make([][]string, 0, len(list))
		for _, n := range list {
			preview := strings.ReplaceAll(n.Content, "\n", " ")
			if n.IsPrivate && locked {
				preview = "(private)"
			}
			rows = append(rows, []string{
				cli.ShortID(n.ID),
				cli.Truncate(n.Title, 24),
				cli.Truncate(preview, 40),
				cli.FormatDate(n.CreatedAt),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers:    []string{"ID", "Title", "Content", "Saved"},
			Rows:       rows,
			RightAlign: []bool{false, false, false, false},
		}))
		return nil
	})
}

func runNotesOpen(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		ref, ok := a.Notes.Resolve(args[0])
		if !ok {
			fmt.Printf("  No note matches %q.\n", args[0])
			return nil
		}
		n, err := openNote(a.Notes, ref.ID)
		if err != nil {
			return err
		}
		defer a.Notes.CloseEditor()

		fmt.Println()
		if n.Title != "" {
			fmt.Println("  " + n.Title)
			fmt.Println()
		}
		for _, line := range strings.Split(n.Content, "\n") {
			fmt.Println("  " + line)
		}
		fmt.Println()
		return nil
	})
}

func runNotesRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		n, ok := a.Notes.Resolve(args[0])
		if !ok || !a.RequestDeleteNote(n.ID) {
			fmt.Printf("  No note matches %q.\n", args[0])
			return nil
		}
		done, err := resolveGate(a)
		if err != nil {
			return err
		}
		if done {
			fmt.Println("  Deleted.")
		}
		return nil
	})
}
