package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/futuroattore86/Ale-Abbey-Beer-Tycoon-Calculator/optimizer"
)

// searchResponse is the JSON shape shared by --json output and the Lambda handler.
// Absent results are encoded as null.
type searchResponse struct {
	BestQuantities []int              `json:"best_quantities"`
	BestValues     map[string]float64 `json:"best_values"`
	Stats          statsResponse      `json:"stats"`
}

type statsResponse struct {
	TotalCombinations json.Number `json:"total_combinations"`
	Examined          uint64      `json:"examined_combinations"`
	SkippedTotal      uint64      `json:"skipped_total"`
	SkippedRequired   uint64      `json:"skipped_required"`
	SkippedRange      uint64      `json:"skipped_range"`
	Valid             uint64      `json:"valid_combinations"`
	ExecutionTime     float64     `json:"execution_time"`
	BestScore         *float64    `json:"best_score"`
}

// errorResponse is the body of a rejected request.
type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(res optimizer.Result) searchResponse {
	out := searchResponse{
		Stats: statsResponse{
			TotalCombinations: json.Number("0"),
			Examined:          res.Stats.Examined,
			SkippedTotal:      res.Stats.SkippedTotal,
			SkippedRequired:   res.Stats.SkippedRequired,
			SkippedRange:      res.Stats.SkippedRange,
			Valid:             res.Stats.Valid,
			ExecutionTime:     res.Stats.Elapsed.Seconds(),
			BestScore:         res.Stats.BestScore,
		},
	}
	if res.Stats.TotalCombinations != nil {
		out.Stats.TotalCombinations = json.Number(res.Stats.TotalCombinations.String())
	}
	if res.Found() {
		out.BestQuantities = []int(res.Quantities)
		out.BestValues = res.Values.Map()
	}
	return out
}

// printStyles holds the styles used by FormatResult.
type printStyles struct {
	header lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	dim    lipgloss.Style
}

func newPrintStyles() printStyles {
	return printStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// FormatResult renders a search result: the recipe, its virtues and the
// search statistics.
func FormatResult(cat *optimizer.Catalog, res optimizer.Result) string {
	st := newPrintStyles()
	var b strings.Builder

	if !res.Found() {
		b.WriteString(st.bad.Render("No combination satisfies the constraints."))
		b.WriteString("\n")
	} else {
		b.WriteString(st.header.Render("Best combination"))
		b.WriteString("\n")
		for i, q := range res.Quantities {
			if q > 0 {
				fmt.Fprintf(&b, "  %-18s %d\n", cat.Label(i), q)
			}
		}
		fmt.Fprintf(&b, "  %s %d\n", st.dim.Render(fmt.Sprintf("%-18s", "total units")), res.Quantities.Sum())

		b.WriteString(st.header.Render("Virtues"))
		b.WriteString("\n")
		for _, vt := range optimizer.Virtues {
			fmt.Fprintf(&b, "  %-18s %.2f\n", vt, res.Values[vt])
		}
		fmt.Fprintf(&b, "  %-18s %s\n", "score", st.good.Render(fmt.Sprintf("%.2f", res.Score)))
	}

	s := res.Stats
	b.WriteString(st.header.Render("Search statistics"))
	b.WriteString("\n")
	total := "0"
	if s.TotalCombinations != nil {
		total = s.TotalCombinations.String()
	}
	fmt.Fprintf(&b, "  %-26s %s\n", "theoretical combinations", total)
	fmt.Fprintf(&b, "  %-26s %d\n", "examined", s.Examined)
	fmt.Fprintf(&b, "  %-26s %d\n", "skipped (unit budget)", s.SkippedTotal)
	fmt.Fprintf(&b, "  %-26s %d\n", "skipped (required)", s.SkippedRequired)
	fmt.Fprintf(&b, "  %-26s %d\n", "skipped (out of range)", s.SkippedRange)
	fmt.Fprintf(&b, "  %-26s %d\n", "valid", s.Valid)
	fmt.Fprintf(&b, "  %-26s %.2fs\n", "execution time", s.Elapsed.Seconds())
	return b.String()
}

// FormatCatalog lists every ingredient in unlock order with its coefficients.
func FormatCatalog(cat *optimizer.Catalog) string {
	st := newPrintStyles()
	var b strings.Builder
	b.WriteString(st.header.Render(fmt.Sprintf("%-4s %-3s %-18s %7s %7s %9s %6s",
		"#", "idx", "ingredient", "taste", "color", "strength", "foam")))
	b.WriteString("\n")
	for pos, idx := range cat.UnlockOrder() {
		name := cat.Name(idx)
		if cat.IsAlwaysAvailable(idx) {
			name += "*"
		}
		fmt.Fprintf(&b, "%-4d %-3d %-18s %7.1f %7.1f %9.1f %6.1f\n", pos+1, idx, name,
			cat.Coefficient(optimizer.Taste, idx),
			cat.Coefficient(optimizer.Color, idx),
			cat.Coefficient(optimizer.Strength, idx),
			cat.Coefficient(optimizer.Foam, idx))
	}
	b.WriteString(st.dim.Render("* always available"))
	b.WriteString("\n")
	return b.String()
}
