package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/preflop"
	"github.com/lox/pokerdrill/internal/replay"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/script"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	heroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	foldedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Bold(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	wrongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func renderCard(c string) string {
	if len(c) == 2 && (c[1] == 'h' || c[1] == 'd') {
		return redCardStyle.Render(c)
	}
	return blackCardStyle.Render(c)
}

func renderCards(cards []string) string {
	if len(cards) == 0 {
		return infoStyle.Render("-")
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = renderCard(c)
	}
	return strings.Join(out, " ")
}

// splitHand turns "AhKh" into ["Ah", "Kh"].
func splitHand(hand string) []string {
	var out []string
	for i := 0; i+2 <= len(hand); i += 2 {
		out = append(out, hand[i:i+2])
	}
	return out
}

func bb(v float64) string {
	return script.FormatBB(v) + "BB"
}

// writeTable prints the scenario table as it stands.
func writeTable(w io.Writer, s *scenario.Scenario, snap replay.Snapshot) {
	st := snap.State
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s  %s", s.ID, s.Title)))
	fmt.Fprintf(w, "%s  board %s  pot %s\n", headerStyle.Render(string(st.Street)), renderCards(st.Board), bb(st.Pot))

	rows := make([][]string, 0, len(snap.Players))
	styles := make([]lipgloss.Style, 0, len(snap.Players))
	for _, p := range snap.Players {
		cards := ""
		style := lipgloss.NewStyle()
		switch {
		case p.IsUser:
			cards = strings.Join(st.HeroHoleCards, " ")
			style = heroStyle
		case !p.Active:
			style = foldedStyle
		}
		rows = append(rows, []string{string(p.Pos), bb(p.Stack), bb(p.InvestedThisStreet), p.LastAction, cards})
		styles = append(styles, style)
	}
	fmt.Fprintln(w, styledTable([]string{"SEAT", "STACK", "IN", "LAST", "CARDS"}, rows, styles))
}

// styledTable renders rows with an optional per-row style.
func styledTable(headers []string, rows [][]string, styles []lipgloss.Style) string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.PaddingRight(2)
			}
			if row >= 0 && row < len(styles) {
				return styles[row].PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		String()
}

func writeDecision(w io.Writer, node *scenario.Node) {
	fmt.Fprintln(w, promptStyle.Render(node.Prompt))
	legal := make([]string, len(node.LegalActions))
	for i, a := range node.LegalActions {
		legal[i] = fmt.Sprintf("%d) %s", i+1, a)
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(legal, "  "))
	if len(node.RaiseOptions) > 0 {
		sizes := make([]string, len(node.RaiseOptions))
		for i, v := range node.RaiseOptions {
			sizes[i] = bb(v)
		}
		fmt.Fprintln(w, infoStyle.Render("  sizes: "+strings.Join(sizes, ", ")))
	}
}

func writeVerdict(w io.Writer, correct bool, want string) {
	if correct {
		fmt.Fprintln(w, correctStyle.Render("Correct!"))
		return
	}
	fmt.Fprintln(w, wrongStyle.Render("Not quite. Best play: "+want))
}

func describeCorrect(c *scenario.Correct) string {
	if c == nil {
		return "-"
	}
	if c.SizeBB != nil {
		return fmt.Sprintf("%s %s", c.Action, bb(*c.SizeBB))
	}
	return string(c.Action)
}

func writeExplain(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, infoStyle.Render("  • "+l))
	}
}

// writeSpot prints a generated preflop spot.
func writeSpot(w io.Writer, n int, spot *preflop.Spot) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Spot %d  %s  %s  %s", n, spot.ID, spot.Table, spot.Phase)))
	fmt.Fprintf(w, "%s %s  pot %s  to call %s\n",
		headerStyle.Render(string(spot.HeroPos)), renderCards(splitHand(spot.HeroHand)), bb(spot.PotBB), bb(spot.CallCostBB))
	fmt.Fprintln(w, infoStyle.Render("  "+spot.LineSummary))

	rows := make([][]string, 0, len(spot.Players))
	styles := make([]lipgloss.Style, 0, len(spot.Players))
	for _, p := range spot.Players {
		style := lipgloss.NewStyle()
		switch {
		case p.IsHero:
			style = heroStyle
		case !p.InHand:
			style = foldedStyle
		}
		rows = append(rows, []string{string(p.Pos), bb(p.StackBB), bb(p.InvestedBB), p.LastAction})
		styles = append(styles, style)
	}
	fmt.Fprintln(w, styledTable([]string{"SEAT", "STACK", "IN", "LAST"}, rows, styles))
}

func writeChoices(w io.Writer, choices []scenario.ActionType) {
	out := make([]string, len(choices))
	for i, a := range choices {
		out[i] = fmt.Sprintf("%d) %s", i+1, a)
	}
	fmt.Fprintln(w, promptStyle.Render("  "+strings.Join(out, "  ")))
}

func describeRecommendation(rec preflop.Recommendation) string {
	if rec.RaiseToBB != nil {
		return fmt.Sprintf("%s to %s", rec.Action, bb(*rec.RaiseToBB))
	}
	return string(rec.Action)
}

type statsRow struct {
	id      string
	summary attempts.Summary
}

// statsRows summarizes every scenario with attempts, or just id when set.
func statsRows(list []scenario.AttemptResult, id string) []statsRow {
	var ids []string
	if id != "" {
		ids = []string{id}
	} else {
		for _, a := range list {
			if !slices.Contains(ids, a.ScenarioID) {
				ids = append(ids, a.ScenarioID)
			}
		}
		slices.Sort(ids)
	}
	rows := make([]statsRow, 0, len(ids))
	for _, sid := range ids {
		rows = append(rows, statsRow{id: sid, summary: attempts.Stats(list, sid)})
	}
	return rows
}

func writeStats(w io.Writer, rows []statsRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, infoStyle.Render("No attempts recorded yet."))
		return
	}
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		missed := strings.Join(r.summary.WrongNodeIDs, ",")
		if missed == "" {
			missed = "-"
		}
		body = append(body, []string{
			r.id,
			fmt.Sprint(r.summary.Attempts),
			fmt.Sprint(r.summary.Correct),
			fmt.Sprintf("%.0f%%", r.summary.Accuracy*100),
			missed,
		})
	}
	fmt.Fprintln(w, styledTable([]string{"SCENARIO", "ATTEMPTS", "CORRECT", "ACCURACY", "MISSED"}, body, nil))
}
