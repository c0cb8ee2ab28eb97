package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/princessupload/audience-newsletter/internal/analysis"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// ReportView renders one lottery's full analysis for the terminal.
func ReportView(profile model.LotteryProfile, report model.LotteryReport) string {
	var b strings.Builder

	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(profile.Color))
	b.WriteString(name.Render(profile.Emoji + " " + profile.Name))
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d draws, %d excluded", report.Draws, report.Excluded)))
	b.WriteString("\n")

	if report.LastDraw != nil {
		b.WriteString(fmt.Sprintf("  Last draw %s: %s + %d\n",
			report.LastDraw.Date.Format(model.DateLayout),
			joinNumbers(report.LastDraw.SortedMain()),
			report.LastDraw.Bonus))
	}

	b.WriteString("\n" + BoldStyle.Render("  Position pools (pick 1 from each)") + "\n")
	for i, pool := range report.PositionPools {
		detail := ""
		if i < len(report.PositionCoverage) && i < len(report.PositionImprovement) {
			detail = SubtleStyle.Render(fmt.Sprintf("  %.1f%% coverage, %.2fx lift",
				report.PositionCoverage[i], report.PositionImprovement[i]))
		}
		b.WriteString(fmt.Sprintf("    Position %d: %s%s\n", i+1, joinNumbers(pool.Numbers()), detail))
	}
	if len(report.BonusPool) > 0 {
		detail := SubtleStyle.Render(fmt.Sprintf("  %.1f%% coverage, %.2fx lift",
			report.BonusCoverage, report.BonusImprovement))
		b.WriteString(fmt.Sprintf("    %s: %s%s\n", profile.BonusName, joinNumbers(report.BonusPool.Numbers()), detail))
	}
	if len(report.HotNumbers) > 0 {
		b.WriteString(fmt.Sprintf("    Hot (last %d draws): %s\n",
			profile.HotWindow, joinNumbers(report.HotNumbers.Numbers())))
	}

	b.WriteString("\n")
	b.WriteString(ValidationView(report))
	return b.String()
}

// ValidationView renders the walk-forward section of a report.
func ValidationView(report model.LotteryReport) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render("  Walk-forward validation") + "\n")

	bt := report.Backtest
	b.WriteString(methodLine("Position frequency", bt.PositionFrequency))
	b.WriteString(methodLine("Hot numbers", bt.HotNumbers))
	b.WriteString(repeatLine("Repeat pattern", bt.RepeatPattern))
	b.WriteString(comboLine("Proven combos", bt.ProvenCombos))
	b.WriteString(constraintLine("Constraints", report.ConstraintSummary))
	return b.String()
}

// ComparisonView renders the cross-lottery ranking, strongest patterns
// first.
func ComparisonView(rows []analysis.ComparisonRow) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("no lotteries analyzed")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers("LOTTERY", "COVERAGE", "LIFT", "HOT ACCURACY", "DRAWS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	for _, row := range rows {
		t.Row(
			row.Name,
			fmt.Sprintf("%.1f%%", row.AvgCoverage),
			fmt.Sprintf("%.2fx", row.AvgImprovement),
			fmt.Sprintf("%.1f%%", row.HotAccuracy),
			strconv.Itoa(row.Draws),
		)
	}
	return t.Render()
}

const validationLabelWidth = 20

func validationLine(label, detail string) string {
	return fmt.Sprintf("    %-*s %s\n", validationLabelWidth, label, detail)
}

func methodLine(label string, r model.MethodResult) string {
	if !r.Applicable {
		return validationLine(label, SubtleStyle.Render("not applicable"))
	}
	detail := fmt.Sprintf("%.1f%% vs %.1f%% baseline (%s, %d/%d hits)",
		r.Accuracy, r.Baseline, liftText(r.Improvement), r.Hits, r.Total)
	return validationLine(label, detail)
}

func repeatLine(label string, r model.RepeatResult) string {
	if !r.Applicable {
		return validationLine(label, SubtleStyle.Render("not applicable"))
	}
	detail := fmt.Sprintf("%.1f%% of numbers repeat (%d/%d)",
		r.RepeatRate*100, r.Repeats, r.TotalNumbers)
	return validationLine(label, detail)
}

func comboLine(label string, r model.ComboResult) string {
	if !r.Applicable {
		return validationLine(label, SubtleStyle.Render("not applicable"))
	}
	detail := fmt.Sprintf("%.2f hits/ticket vs %.2f expected (%s, %d combos)",
		r.HitsPerTicket, r.ExpectedPerTicket, liftText(r.Improvement), r.ProvenCount)
	return validationLine(label, detail)
}

func constraintLine(label string, s model.ConstraintSummary) string {
	if !s.Applicable {
		return validationLine(label, SubtleStyle.Render("not applicable"))
	}
	detail := fmt.Sprintf("%.1f%% of history passes (%d/%d)", s.PassRate, s.Passed, s.Total)
	return validationLine(label, detail)
}

// liftText colors improvement ratios green at or above 1.0 and red
// below.
func liftText(ratio float64) string {
	text := fmt.Sprintf("%.2fx", ratio)
	if ratio >= 1 {
		return SuccessStyle.Render(text)
	}
	return ErrorStyle.Render(text)
}

func joinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
