package renderer

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/etnz/taxlot"
)

// mustBook replays a small two-symbol history and fails the test on any error.
func mustBook(t *testing.T) (*taxlot.LotBook, *taxlot.BatchReport) {
	t.Helper()
	usd := func(v float64) taxlot.Money { return taxlot.M(v, "USD") }
	transactions := []taxlot.Transaction{
		taxlot.NewTransaction("t1", "broker", "ACME", taxlot.MustParse("2021-01-01"), "buy", taxlot.Q(10), taxlot.Money{}, usd(1000)),
		taxlot.NewTransaction("t2", "broker", "ACME", taxlot.MustParse("2021-06-01"), "buy", taxlot.Q(10), taxlot.Money{}, usd(2000)),
		taxlot.NewTransaction("t3", "broker", "ACME", taxlot.MustParse("2022-01-01"), "sell", taxlot.Q(15), taxlot.Money{}, usd(3000)),
		taxlot.NewTransaction("t4", "broker", "ZETA", taxlot.MustParse("2021-03-01"), "buy", taxlot.Q(5), taxlot.Money{}, usd(500)),
	}
	book, report := taxlot.Replay(transactions, taxlot.FIFO, nil)
	if err := report.Err(); err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	return book, report
}

// tableRows parses the markdown and counts body rows of the first table,
// proving the output is a well-formed table and not text that merely looks
// like one.
func tableRows(t *testing.T, markdown string) int {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader([]byte(markdown)))

	rows := 0
	found := false
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *east.Table:
			if found {
				return ast.WalkSkipChildren, nil
			}
			found = true
		case *east.TableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown failed: %v", err)
	}
	if !found {
		t.Fatalf("no markdown table found in:\n%s", markdown)
	}
	return rows
}

func TestLotsMarkdown(t *testing.T) {
	book, _ := mustBook(t)

	got := LotsMarkdown(book, "broker", "ACME")

	// Two lots plus the total row.
	if rows := tableRows(t, got); rows != 3 {
		t.Errorf("got %d table rows, want 3 in:\n%s", rows, got)
	}
	for _, want := range []string{"# Lots for ACME in broker", "lot:t1", "lot:t2", "closed", "partial"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestLotsMarkdown_Empty(t *testing.T) {
	book, _ := mustBook(t)

	got := LotsMarkdown(book, "broker", "NONE")
	if !strings.Contains(got, "No lots.") {
		t.Errorf("output for an empty holding does not say so:\n%s", got)
	}
}

func TestAllocationMarkdown(t *testing.T) {
	_, report := mustBook(t)
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(report.Results))
	}

	got := AllocationMarkdown(report.Results[0])

	if rows := tableRows(t, got); rows != 3 {
		t.Errorf("got %d table rows, want 3 in:\n%s", rows, got)
	}
	for _, want := range []string{"# Sale t3", "Method: fifo", "lot:t1", "lot:t2"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Warning") {
		t.Errorf("fully filled sale rendered a warning:\n%s", got)
	}
}

func TestAllocationMarkdown_Oversell(t *testing.T) {
	usd := func(v float64) taxlot.Money { return taxlot.M(v, "USD") }
	transactions := []taxlot.Transaction{
		taxlot.NewTransaction("t1", "broker", "ACME", taxlot.MustParse("2021-01-01"), "buy", taxlot.Q(10), taxlot.Money{}, usd(1000)),
		taxlot.NewTransaction("t2", "broker", "ACME", taxlot.MustParse("2022-01-01"), "sell", taxlot.Q(20), taxlot.Money{}, usd(4000)),
	}
	_, report := taxlot.Replay(transactions, taxlot.FIFO, nil)
	if err := report.Err(); err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	got := AllocationMarkdown(report.Results[0])
	if !strings.Contains(got, "Warning") {
		t.Errorf("oversell rendered no warning:\n%s", got)
	}
}

func TestGainsMarkdown(t *testing.T) {
	book, _ := mustBook(t)
	prices := taxlot.StaticPrices{"ACME": taxlot.M(250, "USD")}

	got := GainsMarkdown(book, prices)

	// Two symbols plus the total row.
	if rows := tableRows(t, got); rows != 3 {
		t.Errorf("got %d table rows, want 3 in:\n%s", rows, got)
	}
	if !strings.Contains(got, "n/a") {
		t.Errorf("symbol without a price should render n/a:\n%s", got)
	}
	// Realized on ACME: 10 shares of $100 gain each, 5 shares flat.
	if !strings.Contains(got, "+$1,000.00") {
		t.Errorf("realized gain missing from report:\n%s", got)
	}
}
