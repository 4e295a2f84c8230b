package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Violation is a single detected problem in the catalog.
type Violation struct {
	Collection string // cards, packs, rotations, ...
	Subject    string // the record it concerns, e.g. "code: '01050' title: 'Sure Gamble'"
	Message    string
	Details    []string
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Subject != "" {
		fmt.Fprintf(&b, "%s (%s): %s", v.Collection, v.Subject, v.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", v.Collection, v.Message)
	}
	for _, d := range v.Details {
		b.WriteString("\n\t")
		b.WriteString(d)
	}
	return b.String()
}

// Tally accumulates violations for one validation pass. It prints each
// violation as it is recorded so that output follows the order of the pass.
type Tally struct {
	Errors     []Violation
	Warnings   []Violation
	Formatting []string

	out io.Writer
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
	formatLabel  = color.New(color.FgMagenta).SprintFunc()
)

func NewTally(out io.Writer) *Tally {
	if out == nil {
		out = io.Discard
	}
	return &Tally{out: out}
}

// Record adds one violation.
func (t *Tally) Record(v Violation) {
	t.Errors = append(t.Errors, v)
	fmt.Fprintf(t.out, "%s %s\n", errorLabel("ERROR"), v)
}

// RecordAll adds every violation in vs.
func (t *Tally) RecordAll(vs []Violation) {
	for _, v := range vs {
		t.Record(v)
	}
}

// Warn adds a finding that does not affect the exit status.
func (t *Tally) Warn(v Violation) {
	t.Warnings = append(t.Warnings, v)
	fmt.Fprintf(t.out, "%s %s\n", warningLabel("WARNING"), v)
}

// RecordFormatting notes a file whose bytes differ from its canonical form.
func (t *Tally) RecordFormatting(path string) {
	t.Formatting = append(t.Formatting, path)
	fmt.Fprintf(t.out, "%s %s: file is not correctly formatted JSON\n", formatLabel("FORMAT"), path)
}

// ErrorCount returns the number of recorded violations.
func (t *Tally) ErrorCount() int {
	return len(t.Errors)
}

// FormattingCount returns the number of badly formatted files.
func (t *Tally) FormattingCount() int {
	return len(t.Formatting)
}

// Failed reports whether the pass should end with a non-zero exit status.
func (t *Tally) Failed() bool {
	return len(t.Errors) > 0 || len(t.Formatting) > 0
}

// Summary is the final line of a validation run.
func (t *Tally) Summary(withFormatting bool) string {
	if withFormatting {
		return fmt.Sprintf("Found %d formatting and %d validation errors", len(t.Formatting), len(t.Errors))
	}
	return fmt.Sprintf("Found %d validation errors", len(t.Errors))
}

// ByCollection counts violations per collection, in first-seen order.
func (t *Tally) ByCollection() (names []string, counts map[string]int) {
	counts = make(map[string]int)
	for _, v := range t.Errors {
		if _, seen := counts[v.Collection]; !seen {
			names = append(names, v.Collection)
		}
		counts[v.Collection]++
	}
	return names, counts
}
