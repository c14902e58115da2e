package services

import (
	"fmt"
	"strings"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// DeriveRows builds one inductive codebook row per distinct category found in
// docs. Candidates are visited document by document (axial category, then
// identified categories, then overarching themes); each is trimmed, blanks
// are skipped, and a candidate whose lowercase form was already accepted is
// skipped. The first-seen casing becomes the variable label.
//
// Documents with a parse error contribute nothing. The result replaces any
// previously derived rows.
func DeriveRows(docs []domain.ParsedDocument, newID func() string) []domain.CodebookRow {
	rows := make([]domain.CodebookRow, 0)
	seen := make(map[string]struct{})

	for i := range docs {
		for _, candidate := range docs[i].Candidates() {
			label := strings.TrimSpace(candidate)
			if label == "" {
				continue
			}
			key := strings.ToLower(label)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rows = append(rows, domain.NewInductiveRow(newID(), label))
		}
	}
	return rows
}

// derivedSummary is the announcement emitted after a derivation.
func derivedSummary(n int) string {
	return fmt.Sprintf("%d %s generated from parsed files.", n, plural(n, "variable", "variables"))
}

// ingestSummary reports how many files decoded and how many failed.
func ingestSummary(succeeded, failed int) string {
	msg := fmt.Sprintf("Processed %d %s.", succeeded, plural(succeeded, "file", "files"))
	if failed > 0 {
		msg += fmt.Sprintf(" %d %s had errors.", failed, plural(failed, "file", "files"))
	}
	return msg
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
