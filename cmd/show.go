package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/netrunnerdb/cardlint/internal/catalog"
)

var (
	showLocale string
	showJSON   bool
)

var showCmd = &cobra.Command{
	Use:   "show [title|code]",
	Short: "Display every printing of a card",
	Long: `Show prints every printing of a card across all packs, in pack order.
Look a card up by its code or by its title (case insensitive).

Attributes that must agree across printings (text, stripped_text and any
consistent_attributes from the config) are marked when they differ.

Examples:
  cardlint show "Sure Gamble"
  cardlint show 01050
  cardlint show --locale fr "Sure Gamble"
  cardlint show --json 01050`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, pack, _, err := resolvePaths(false)
		if err != nil {
			return err
		}

		c, err := catalog.LoadCatalog(base, pack)
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}
		if showLocale != "" {
			if err := c.LoadTranslations(showLocale); err != nil {
				return err
			}
		}

		printings, err := c.Lookup(args[0])
		if err != nil {
			return err
		}

		if showJSON {
			displayRecords(cmd.OutOrStdout(), printings)
			return nil
		}
		displayPrintings(cmd.OutOrStdout(), c, printings, watchedAttributes(cfg.ConsistentAttributes), terminalWidth())
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showLocale, "locale", "l", "", "show titles from translations/<locale>")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print each printing's record as it appears in its pack file")
}

// watchedAttributes lists the attributes compared across printings.
func watchedAttributes(configured []string) []string {
	attrs := []string{"text", "stripped_text"}
	for _, a := range configured {
		if a != "" && !slices.Contains(attrs, a) {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// divergent returns the attributes that do not have the same value on every
// printing.
func divergent(printings []catalog.Printing, attrs []string) map[string]bool {
	out := make(map[string]bool)
	for _, a := range attrs {
		for _, p := range printings[1:] {
			if p.Card.Attribute(a) != printings[0].Card.Attribute(a) {
				out[a] = true
				break
			}
		}
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return width
}

// displayRecords prints the raw pack file record of every printing.
func displayRecords(w io.Writer, printings []catalog.Printing) {
	for _, p := range printings {
		fmt.Fprintf(w, "%s", pretty.Pretty(p.Card.Raw()))
	}
}

// displayPrintings prints one block per printing
func displayPrintings(w io.Writer, c *catalog.Catalog, printings []catalog.Printing, attrs []string, width int) {
	differs := divergent(printings, attrs)

	label := func(name string) string {
		return colorize.CyanString("%-15s", name+":")
	}
	textWidth := width - 19
	if textWidth < 20 {
		textWidth = 20
	}

	for i, p := range printings {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, colorize.HiWhiteString("%s", c.Title(showLocale, p.Card)))
		fmt.Fprintf(w, "  %s%s\n", label("Code"), p.Card.Code)
		fmt.Fprintf(w, "  %s%s (%s)\n", label("Pack"), p.Pack.Name, p.Pack.Code)
		if p.Card.FactionCode != "" {
			fmt.Fprintf(w, "  %s%s\n", label("Faction"), p.Card.FactionCode)
		}
		if p.Card.TypeCode != "" {
			fmt.Fprintf(w, "  %s%s\n", label("Type"), p.Card.TypeCode)
		}

		for _, a := range attrs {
			value := p.Card.AttributeString(a)
			if value == "" {
				value = "<absent>"
			}
			lines := wrapText(value, textWidth)
			if differs[a] {
				for j := range lines {
					lines[j] = colorize.RedString("%s", lines[j])
				}
				lines[0] += colorize.YellowString(" (differs)")
			}
			fmt.Fprintf(w, "  %s%s\n", label(a), lines[0])
			for _, line := range lines[1:] {
				fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", 15), line)
			}
		}
	}
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			// First word on the line, always add it
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
