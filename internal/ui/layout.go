package ui

// Rows the App renders, top to bottom:
//
//	header
//	(blank)
//	input row: search field + submit control
//	suggestion rows         (when shown)
//	error line              (when shown)
//	loading line            (when shown)
//	(blank) selected movie (blank) card rows   (when results shown)
//	(blank) footer
//
// View and mouse hit-testing both derive row positions from layout so the
// two can never disagree.

const (
	headerRows = 2
	footerRows = 2
	minInput   = 16
	buttonCols = 12
)

type region int

const (
	regionNone region = iota
	regionInput
	regionButton
	regionSuggestion
	regionCard
)

type layout struct {
	inputRow   int
	inputWidth int // columns used by the search field; the button follows
	buttonX    int

	suggestTop   int
	suggestCount int

	errorRow   int // -1 when hidden
	loadingRow int // -1 when hidden

	selectedRow int // -1 when hidden
	cardsTop    int
	cardFirst   int // index of the first visible card
	cardCount   int // visible cards
}

func (a App) layout() layout {
	l := layout{
		inputRow:    headerRows,
		errorRow:    -1,
		loadingRow:  -1,
		selectedRow: -1,
	}

	l.inputWidth = a.width - buttonCols - 3
	if l.inputWidth < minInput {
		l.inputWidth = minInput
	}
	l.buttonX = l.inputWidth + 1

	row := l.inputRow + 1
	if a.view.SuggestionsShown() {
		l.suggestTop = row
		l.suggestCount = a.dropdown.Len()
		row += l.suggestCount
	}
	if a.view.ErrorShown() {
		l.errorRow = row
		row++
	}
	if a.view.LoadingShown() {
		l.loadingRow = row
		row++
	}
	if a.view.ResultsShown() {
		l.selectedRow = row + 1
		l.cardsTop = row + 3
		l.cardCount = a.results.Len()

		// Keep the cards on screen: the renderer drops overflow from the top,
		// which would shift every row the mouse maps to.
		if a.height > 0 {
			avail := a.height - l.cardsTop - footerRows
			if avail < 1 {
				avail = 1
			}
			if l.cardCount > avail {
				l.cardCount = avail
				if c := a.results.Cursor(); c >= avail {
					l.cardFirst = c - avail + 1
				}
			}
		}
	}
	return l
}

// hit maps a terminal cell to a region and, for list regions, the item
// index within that list.
func (l layout) hit(x, y int) (region, int) {
	switch {
	case y == l.inputRow && x >= l.buttonX:
		return regionButton, 0
	case y == l.inputRow:
		return regionInput, 0
	case l.suggestCount > 0 && y >= l.suggestTop && y < l.suggestTop+l.suggestCount:
		return regionSuggestion, y - l.suggestTop
	case l.cardCount > 0 && y >= l.cardsTop && y < l.cardsTop+l.cardCount:
		return regionCard, l.cardFirst + y - l.cardsTop
	}
	return regionNone, 0
}
