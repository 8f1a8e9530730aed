package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/pipeline"
)

type addFlags struct {
	name     string
	phone    string
	interest string
}

func newAddCmd(a *app) *cobra.Command {
	var f addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new lead",
		Long: `Add a lead in stage "new". Missing fields are prompted for when stdin is
a terminal.

Example:
  leadboard add --name "Ana Ruiz" --phone 555-0101 --interest "Premium plan"`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.missing() && stdinIsTerminal(cmd) {
				if err := leadForm(&f).Run(); err != nil {
					return userError{fmt.Errorf("add: %w", err)}
				}
			}
			return a.withService(func(svc *pipeline.Service) error {
				out, err := svc.Add(f.name, f.phone, f.interest)
				if err != nil {
					return userError{err}
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), out.Lead)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
				fmt.Fprintln(cmd.OutOrStdout(), out.Lead.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "lead name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&f.interest, "interest", "", "what the lead is interested in")
	return cmd
}

func (f *addFlags) missing() bool {
	return strings.TrimSpace(f.name) == "" ||
		strings.TrimSpace(f.phone) == "" ||
		strings.TrimSpace(f.interest) == ""
}

// leadForm prompts for the lead fields, pre-filled with any flag values.
func leadForm(f *addFlags) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			requiredInput("Name", &f.name),
			requiredInput("Phone", &f.phone),
			requiredInput("Interest", &f.interest),
		),
	).WithShowHelp(false)
}

func requiredInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("required")
			}
			return nil
		})
}

// stdinIsTerminal reports whether the command reads from an interactive
// terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
