package lalr

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/kschwaiger/yantra/internal/grammar"
)

// DumpTable renders g's parsing table as a fixed-width ACTION/GOTO grid,
// one row per ItemSet, columns for every terminal then every
// non-terminal — the same shape a hand-inspected LALR table takes in a
// textbook appendix.
func DumpTable(g *grammar.Grammar) string {
	terms := g.Terminals()
	terms = append(terms, grammar.EndOfInput)
	nonTerms := g.NonTerminals()

	headers := []string{"state", "|"}
	headers = append(headers, terms...)
	headers = append(headers, "|")
	headers = append(headers, nonTerms...)

	data := [][]string{headers}

	for _, is := range g.ItemSets {
		row := []string{fmt.Sprintf("%d", is.Index), "|"}
		for _, t := range terms {
			cell := ""
			if act, ok := is.Shift[t]; ok {
				if act.Kind == grammar.ActionAccept {
					cell = "acc"
				} else {
					cell = fmt.Sprintf("s%d", act.Target)
				}
			} else if act, ok := is.Reduce[t]; ok {
				if act.Kind == grammar.ActionAccept {
					cell = "acc"
				} else {
					cell = "r" + act.Rule.String()
				}
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			cell := ""
			if act, ok := is.Goto[nt]; ok {
				cell = fmt.Sprintf("g%d", act.Target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
