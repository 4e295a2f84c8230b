package validator

import (
	"fmt"
	"regexp"

	"github.com/netrunnerdb/cardlint/internal/card"
)

// A referenceRule checks a card against the index. It returns an empty
// string when the card passes.
type referenceRule func(c *card.Card, packCode string, idx *Index) string

// referenceRules run in order; the first failure ends the card's checks.
var referenceRules = []referenceRule{
	packCodeMatches,
	factionMatchesSide,
	typeExists,
	typeAllowsSide,
	sideExists,
}

func packCodeMatches(c *card.Card, packCode string, _ *Index) string {
	if c.PackCode != packCode {
		return fmt.Sprintf("Pack code '%s' of the card '%s' doesn't match the pack code '%s' of the file it appears in.", c.PackCode, c.Code, packCode)
	}
	return ""
}

func factionMatchesSide(c *card.Card, _ string, idx *Index) string {
	f, ok := idx.Factions.Get(c.FactionCode)
	if !ok {
		return fmt.Sprintf("Faction code '%s' of the card '%s' doesn't exist.", c.FactionCode, c.Code)
	}
	if f.SideCode != c.SideCode {
		return fmt.Sprintf("Faction code '%s' of the card '%s' belongs to side '%s', not '%s'.", c.FactionCode, c.Code, f.SideCode, c.SideCode)
	}
	return ""
}

func typeExists(c *card.Card, _ string, idx *Index) string {
	if !idx.Types.Has(c.TypeCode) {
		return fmt.Sprintf("Type code '%s' of the card '%s' doesn't exist.", c.TypeCode, c.Code)
	}
	return ""
}

func typeAllowsSide(c *card.Card, _ string, idx *Index) string {
	t, _ := idx.Types.Get(c.TypeCode)
	if !t.AllowsSide(c.SideCode) {
		return fmt.Sprintf("Type code '%s' of the card '%s' is not valid for side '%s'.", c.TypeCode, c.Code, c.SideCode)
	}
	return ""
}

func sideExists(c *card.Card, _ string, idx *Index) string {
	if !idx.Sides.Has(c.SideCode) {
		return fmt.Sprintf("Side code '%s' of the card '%s' doesn't exist.", c.SideCode, c.Code)
	}
	return ""
}

// checkReferences returns the message of the first failing reference rule.
func checkReferences(c *card.Card, packCode string, idx *Index) string {
	for _, rule := range referenceRules {
		if msg := rule(c, packCode, idx); msg != "" {
			return msg
		}
	}
	return ""
}

// A textRule inspects a card's own text. Text rules are independent of each
// other and of the reference rules; every failing rule is reported.
type textRule func(c *card.Card) string

var textRules = []textRule{
	strippedTextPresent,
	strippedTextASCII,
	strippedTitleASCII,
	interruptFormatting,
	interfaceFormatting,
	strippedInterruptFormatting,
	strippedInterfaceFormatting,
}

var (
	interruptPattern         = regexp.MustCompile(`\[interrupt\](..)?`)
	interfacePattern         = regexp.MustCompile(`Interface(..)?`)
	strippedInterruptPattern = regexp.MustCompile(`(?i)Interrupt(...)?`)
	strippedInterfacePattern = regexp.MustCompile(`Interface(...)?`)
)

const (
	interruptForm         = "[interrupt] →"
	interfaceForm         = "Interface →"
	strippedInterruptForm = "Interrupt ->"
	strippedInterfaceForm = "Interface ->"
)

func strippedTextPresent(c *card.Card) string {
	if c.Text != "" && c.StrippedText == "" {
		return fmt.Sprintf("%s stripped_text missing", c.Title)
	}
	return ""
}

func strippedTextASCII(c *card.Card) string {
	if !isASCII(c.StrippedText) {
		return fmt.Sprintf("%s stripped_text should be ascii only", c.Title)
	}
	return ""
}

func strippedTitleASCII(c *card.Card) string {
	if !isASCII(c.StrippedTitle) {
		return fmt.Sprintf("%s stripped_title should be ascii only", c.Title)
	}
	return ""
}

func interruptFormatting(c *card.Card) string {
	if !allMatchesEqual(interruptPattern, c.Text, interruptForm) {
		return fmt.Sprintf("%s has incorrect interrupt formatting in text", c.Title)
	}
	return ""
}

func interfaceFormatting(c *card.Card) string {
	if !allMatchesEqual(interfacePattern, c.Text, interfaceForm) {
		return fmt.Sprintf("%s has incorrect interface formatting in text", c.Title)
	}
	return ""
}

func strippedInterruptFormatting(c *card.Card) string {
	if c.Text == "" {
		return ""
	}
	if !allMatchesEqual(strippedInterruptPattern, c.StrippedText, strippedInterruptForm) {
		return fmt.Sprintf("%s has incorrect interrupt formatting in stripped_text", c.Title)
	}
	return ""
}

func strippedInterfaceFormatting(c *card.Card) string {
	if c.Text == "" {
		return ""
	}
	if !allMatchesEqual(strippedInterfacePattern, c.StrippedText, strippedInterfaceForm) {
		return fmt.Sprintf("%s has incorrect interface formatting in stripped_text", c.Title)
	}
	return ""
}

// checkText returns the messages of every failing text rule.
func checkText(c *card.Card) []string {
	var msgs []string
	for _, rule := range textRules {
		if msg := rule(c); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func allMatchesEqual(re *regexp.Regexp, s, want string) bool {
	for _, m := range re.FindAllString(s, -1) {
		if m != want {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
