package ui

// ViewState holds the four independent panel toggles and the submit
// control. It only records what it is told; it never looks at network
// state. App is the only writer.
type ViewState struct {
	suggestions bool
	errorShown  bool
	errorText   string
	results     bool
	loading     bool
	buttonBusy  bool
}

// ShowSuggestions reveals the suggestion dropdown.
func (v *ViewState) ShowSuggestions() { v.suggestions = true }

// HideSuggestions hides the suggestion dropdown.
func (v *ViewState) HideSuggestions() { v.suggestions = false }

// ShowError replaces the error line with msg and reveals it.
func (v *ViewState) ShowError(msg string) {
	v.errorText = msg
	v.errorShown = true
}

// HideError hides the error line.
func (v *ViewState) HideError() { v.errorShown = false }

// ShowResults reveals the selected-movie label and the cards.
func (v *ViewState) ShowResults() { v.results = true }

// HideResults hides the selected-movie label and the cards.
func (v *ViewState) HideResults() { v.results = false }

// ShowLoading reveals the loading indicator.
func (v *ViewState) ShowLoading() { v.loading = true }

// HideLoading hides the loading indicator.
func (v *ViewState) HideLoading() { v.loading = false }

// SetButtonLoading disables the submit control and swaps its label for a
// spinner, or restores it.
func (v *ViewState) SetButtonLoading(busy bool) { v.buttonBusy = busy }

func (v ViewState) SuggestionsShown() bool { return v.suggestions }
func (v ViewState) ErrorShown() bool       { return v.errorShown }
func (v ViewState) ResultsShown() bool     { return v.results }
func (v ViewState) LoadingShown() bool     { return v.loading }

// ErrorText returns the last message passed to ShowError.
func (v ViewState) ErrorText() string { return v.errorText }

// ButtonEnabled reports whether the submit control accepts presses.
func (v ViewState) ButtonEnabled() bool { return !v.buttonBusy }

// ButtonSpinner reports whether the submit control shows the spinner
// instead of its label.
func (v ViewState) ButtonSpinner() bool { return v.buttonBusy }
