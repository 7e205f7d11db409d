package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/output"
)

// cardWidth is the inner width of a station card (border excluded).
const cardWidth = 30

// renderCard renders one station as a bordered card.
func renderCard(st models.Station, focused bool) string {
	inner := cardWidth - 2 // horizontal padding

	var b strings.Builder
	code := styleCode.Render(st.Code)
	name := output.Truncate(st.Name, inner-lipgloss.Width(st.Code)-1)
	b.WriteString(styleName.Render(name) + " " + code)

	if names := st.RegionalNames(); len(names) > 0 {
		b.WriteString("\n" + styleRegional.Render(output.Truncate(names[0].Value, inner)))
	}
	b.WriteString("\n" + styleMuted.Render(output.Truncate(output.Place(&st), inner)))
	if st.ShowTrainCount() {
		b.WriteString("\n" + styleMuted.Render(st.TrainCount+" trains"))
	}

	style := styleCardNormal
	if focused {
		style = styleCardFocused
	}
	return style.Width(cardWidth).Render(b.String())
}

// renderGrid lays cards out in rows of cols. The card at cursor is drawn
// focused when focused is set.
func renderGrid(stations []models.Station, cols, cursor int, focused bool) string {
	if cols < 1 {
		cols = 1
	}

	var rows []string
	for start := 0; start < len(stations); start += cols {
		end := min(start+cols, len(stations))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(stations[i], focused && i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
