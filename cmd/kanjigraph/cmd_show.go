package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kanjigraph/internal/codec"
	"kanjigraph/internal/domain"
	"kanjigraph/internal/repository/sqlite"
	"kanjigraph/internal/service"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		format  string
		color   bool
		catalog string
	)
	cmd := &cobra.Command{
		Use:   "show [INPUT] SYMBOL",
		Short: "Print the diagram of one character",
		Long: `Loads INPUT and prints the diagram of SYMBOL to stdout. With --catalog the
mapping last recorded by "export --catalog" is used instead and INPUT is
omitted.

The text and mermaid formats list direct neighbours only; dot, json and yaml
carry the full two-level composition chain. A SYMBOL without an entry prints
as a single node.`,
		Example: `  kanjigraph show paste.txt 面
  kanjigraph show paste.txt 愛 --format mermaid
  kanjigraph show paste.txt 面 --format dot | dot -Tsvg > face.svg
  kanjigraph show --catalog kanji.db 面`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewKanjiService(a.logger, nil, a.renderOptions())
			if cmd.Flags().Changed("catalog") {
				if len(args) != 1 {
					return fmt.Errorf("show with --catalog takes only SYMBOL, got %d arguments", len(args))
				}
				if err := a.loadFromCatalog(cmd.Context(), svc, catalog); err != nil {
					return err
				}
			} else {
				if len(args) != 2 {
					return fmt.Errorf("show needs INPUT and SYMBOL, or --catalog and SYMBOL")
				}
				if err := svc.Load(args[0]); err != nil {
					return err
				}
			}
			symbol := args[len(args)-1]

			out := cmd.OutOrStdout()
			if color && format == "text" {
				_, err := io.WriteString(out, colorText(svc.Diagram(symbol)))
				return err
			}
			if err := svc.WriteDiagram(symbol, format, out); err != nil {
				return err
			}
			if format == "mermaid" {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Annotations = inputAnnotation(2)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: "+strings.Join(codec.Formats(), ", "))
	cmd.Flags().BoolVar(&color, "color", false, "Colour the text format with the diagram fill colours")
	cmd.Flags().StringVar(&catalog, "catalog", "", "Read the mapping from this SQLite catalog instead of INPUT")
	return cmd
}

// loadFromCatalog fills svc from an existing catalog without creating one
func (a *app) loadFromCatalog(ctx context.Context, svc *service.KanjiService, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	catalog, err := sqlite.New(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	return svc.LoadCatalog(ctx, catalog, path)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(domain.ColorFocus))
)

// colorText renders the text diagram with each neighbour in its node colour
func colorText(d *domain.Diagram) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render("Kanji:"), focusStyle.Render(d.Focus))
	b.WriteString(headingStyle.Render("In:") + "\n")
	for _, in := range d.Incoming {
		fmt.Fprintf(&b, "  %s\n", nodeStyle(d, in).Render(in))
	}
	b.WriteString(headingStyle.Render("Out:") + "\n")
	for _, out := range d.Outgoing {
		fmt.Fprintf(&b, "  %s\n", nodeStyle(d, out).Render(out))
	}
	return b.String()
}

func nodeStyle(d *domain.Diagram, symbol string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if n, ok := d.Node(symbol); ok {
		style = style.Foreground(lipgloss.Color(n.Style.FillColor))
	}
	return style
}
