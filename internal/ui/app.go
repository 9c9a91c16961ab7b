package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/abelbrown/flick/internal/debounce"
	"github.com/abelbrown/flick/internal/otel"
	"github.com/abelbrown/flick/internal/recommend"
	"github.com/abelbrown/flick/internal/suggest"
)

const comp = "ui"

type focusArea int

const (
	focusInput focusArea = iota
	focusSuggestions
	focusResults
)

// ObsConfig wires observability into the App. Both fields may be nil.
type ObsConfig struct {
	Ring   *otel.RingBuffer
	Events *otel.Logger
}

// AppConfig holds everything the App needs. Every field is optional; a
// missing client simply disables its half of the page.
type AppConfig struct {
	Ctx       context.Context
	BaseURL   string
	Debounce  *debounce.Scheduler
	Suggest   *suggest.Client
	Recommend *recommend.Client
	// Stagger is the delay between consecutive cards starting their bars.
	Stagger time.Duration
	Obs     ObsConfig
	// Now is the animation clock. Defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model and the only writer of ViewState.
// Network work happens in commands; results come back as messages.
type App struct {
	ctx       context.Context
	baseURL   string
	debounce  *debounce.Scheduler
	suggest   *suggest.Client
	recommend *recommend.Client
	events    *otel.Logger
	ring      *otel.RingBuffer
	now       func() time.Time

	view     ViewState
	input    textinput.Model
	spinner  spinner.Model
	dropdown suggest.Model
	results  recommend.Results
	focus    focusArea
	health   *HealthChecked

	width        int
	height       int
	ready        bool
	debugVisible bool
}

// NewAppWithConfig creates an App from cfg.
func NewAppWithConfig(cfg AppConfig) App {
	ctx := cfg.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	deb := cfg.Debounce
	if deb == nil {
		deb = debounce.New(500*time.Millisecond, 2)
	}
	stagger := cfg.Stagger
	if stagger < 0 {
		stagger = 0
	}

	ti := textinput.New()
	ti.Placeholder = "Search for a movie..."
	ti.Prompt = "> "
	ti.PromptStyle = InputPrompt
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorHighlight)),
	)

	return App{
		ctx:       ctx,
		baseURL:   cfg.BaseURL,
		debounce:  deb,
		suggest:   cfg.Suggest,
		recommend: cfg.Recommend,
		events:    cfg.Obs.Events,
		ring:      cfg.Obs.Ring,
		now:       now,
		input:     ti,
		spinner:   sp,
		results:   recommend.NewResults(stagger),
	}
}

// Init starts the cursor blinking.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.events.Trace(comp, msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.input.Width = a.layout().inputWidth - 3
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case debounce.Fired:
		if !a.debounce.Fire(msg.Token) {
			return a, nil
		}
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDebounceFire, Comp: comp, Token: msg.Token, Query: msg.Query})
		if a.suggest == nil {
			return a, nil
		}
		return a, a.suggest.Fetch(a.ctx, msg.Query)

	case suggest.Loaded:
		if a.suggest == nil || !a.suggest.Accept(msg) {
			return a, nil
		}
		if msg.Err != nil {
			// Already logged by the client. Suggestions fail quietly, but a
			// list that no longer answers the query is taken down.
			if suggest.Supersedes(msg.Err) {
				a.hideSuggestions()
			}
			return a, nil
		}
		if len(msg.Matches) == 0 {
			a.hideSuggestions()
			return a, nil
		}
		a.dropdown.SetItems(msg.Matches)
		a.view.ShowSuggestions()
		return a, nil

	case recommend.Loaded:
		if a.recommend == nil || !a.recommend.Accept(msg) {
			return a, nil
		}
		a.view.HideLoading()
		a.view.SetButtonLoading(false)
		if msg.Err != nil {
			a.view.ShowError(recommend.ErrorText(msg.Err))
			return a, nil
		}
		a.results.Set(msg.InputMovie, msg.Recommendations, a.now())
		a.view.ShowResults()
		if a.results.Len() > 0 {
			a.focus = focusResults
			a.input.Blur()
		}
		return a, a.results.Tick()

	case recommend.Frame:
		if msg.Gen != a.results.Gen() {
			return a, nil
		}
		if a.results.Step(msg.Time) {
			return a, a.results.Tick()
		}
		return a, nil

	case HealthChecked:
		if a.health == nil || a.health.Online() != msg.Online() {
			ev := otel.Event{Level: otel.LevelInfo, Kind: otel.KindHealth, Comp: comp, Dur: msg.Latency, Count: msg.TotalMovies, Msg: msg.Status}
			if msg.Err != nil {
				ev.Level = otel.LevelWarn
				ev.Err = msg.Err.Error()
			}
			a.events.Emit(ev)
		}
		a.health = &msg
		return a, nil

	case spinner.TickMsg:
		if !a.view.LoadingShown() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Cursor blink and anything else the text input understands.
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+d", "f12":
		a.debugVisible = !a.debugVisible
		return a, nil
	}

	if a.debugVisible {
		if msg.String() == "esc" {
			a.debugVisible = false
		}
		return a, nil
	}

	switch a.focus {
	case focusSuggestions:
		return a.handleSuggestionKey(msg)
	case focusResults:
		return a.handleResultsKey(msg)
	}
	return a.handleInputKey(msg)
}

func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return a, a.searchMovie(a.input.Value())

	case "esc":
		a.dismissSuggestions()
		return a, nil

	case "down", "tab":
		if a.view.SuggestionsShown() && a.dropdown.Len() > 0 {
			a.setFocus(focusSuggestions)
			a.dropdown.SetCursor(0)
		} else if a.view.ResultsShown() && a.results.Len() > 0 {
			a.setFocus(focusResults)
		}
		return a, nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.onInput(a.input.Value()))
}

func (a App) handleSuggestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		if !a.dropdown.MoveUp() {
			a.setFocus(focusInput)
		}
		return a, nil

	case "down":
		a.dropdown.MoveDown()
		return a, nil

	case "tab":
		if a.view.ResultsShown() && a.results.Len() > 0 {
			a.setFocus(focusResults)
		} else {
			a.setFocus(focusInput)
		}
		return a, nil

	case "enter":
		if title, ok := a.dropdown.Selected(); ok {
			return a, a.selectMovie(title)
		}
		return a, nil

	case "esc":
		a.dismissSuggestions()
		a.setFocus(focusInput)
		return a, nil
	}

	// Typing goes back to the search field.
	a.setFocus(focusInput)
	return a.handleInputKey(msg)
}

func (a App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if !a.results.MoveUp() {
			a.setFocus(focusInput)
		}
		return a, nil

	case "down":
		a.results.MoveDown()
		return a, nil

	case "enter":
		if card, ok := a.results.Selected(); ok {
			return a, a.chainSearch(card.Title)
		}
		return a, nil

	case "esc", "tab", "shift+tab":
		a.setFocus(focusInput)
		return a, nil
	}

	a.setFocus(focusInput)
	return a.handleInputKey(msg)
}

// handleMouseMsg applies a left press to whatever region it lands on. A
// press outside the search field and the dropdown dismisses the dropdown.
func (a App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.debugVisible || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}

	reg, idx := a.layout().hit(msg.X, msg.Y)
	switch reg {
	case regionInput:
		a.setFocus(focusInput)
		return a, nil

	case regionSuggestion:
		if title, ok := a.dropdown.At(idx); ok {
			a.dropdown.SetCursor(idx)
			return a, a.selectMovie(title)
		}
		return a, nil

	case regionButton:
		a.dismissSuggestions()
		if !a.view.ButtonEnabled() {
			return a, nil
		}
		return a, a.searchMovie(a.input.Value())

	case regionCard:
		a.dismissSuggestions()
		a.results.SetCursor(idx)
		if card, ok := a.results.Selected(); ok {
			return a, a.chainSearch(card.Title)
		}
		return a, nil
	}

	a.dismissSuggestions()
	return a, nil
}

// onInput runs a new field value through the debounce scheduler.
func (a *App) onInput(text string) tea.Cmd {
	d := a.debounce.Input(text)
	if d.Action == debounce.ActionHide {
		// Anything still in flight was asked for a longer query.
		if a.suggest != nil {
			a.suggest.Invalidate()
		}
		a.hideSuggestions()
		return nil
	}
	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDebounceSchedule, Comp: comp, Token: d.Token, Query: d.Query})
	return a.debounce.Cmd(d)
}

// selectMovie puts title in the search field and runs the search for it.
func (a *App) selectMovie(title string) tea.Cmd {
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSelect, Comp: comp, Query: title, Msg: "suggestion"})
	a.input.SetValue(title)
	a.input.CursorEnd()
	a.hideSuggestions()
	return a.searchMovie(title)
}

// chainSearch runs a new search for a result card's title.
func (a *App) chainSearch(title string) tea.Cmd {
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSelect, Comp: comp, Query: title, Msg: "card"})
	a.input.SetValue(title)
	a.input.CursorEnd()
	return a.searchMovie(title)
}

// searchMovie starts a recommendation search for query. A blank query only
// shows the empty-query error.
func (a *App) searchMovie(query string) tea.Cmd {
	if a.recommend == nil {
		return nil
	}
	cmd, err := a.recommend.Search(a.ctx, query)
	if err != nil {
		a.view.ShowError(recommend.ErrorText(err))
		return nil
	}

	// A pending or in-flight suggestion fetch must not reopen the dropdown.
	if a.debounce.Pending() {
		a.debounce.Cancel()
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDebounceCancel, Comp: comp, Token: a.debounce.Latest()})
	}
	if a.suggest != nil {
		a.suggest.Invalidate()
	}

	a.view.HideError()
	a.view.HideResults()
	a.results.Clear()
	a.hideSuggestions()
	a.setFocus(focusInput)

	a.view.ShowLoading()
	a.view.SetButtonLoading(true)
	return tea.Batch(cmd, a.spinner.Tick)
}

func (a *App) hideSuggestions() {
	a.view.HideSuggestions()
	a.dropdown.Clear()
	if a.focus == focusSuggestions {
		a.setFocus(focusInput)
	}
}

// dismissSuggestions hides the dropdown in response to the user.
func (a *App) dismissSuggestions() {
	if !a.view.SuggestionsShown() {
		return
	}
	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDismiss, Comp: comp})
	a.hideSuggestions()
}

func (a *App) setFocus(f focusArea) {
	a.focus = f
	if f == focusInput {
		a.input.Focus()
	} else {
		a.input.Blur()
	}
}

// View renders the page.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.debugVisible {
		return a.debugView()
	}

	l := a.layout()
	lines := []string{a.header(), ""}

	button := ButtonStyle.Render("Recommend")
	if a.view.ButtonSpinner() {
		button = ButtonBusyStyle.Render(a.spinner.View())
	}
	field := lipgloss.NewStyle().Width(l.inputWidth).MaxWidth(l.inputWidth).Render(a.input.View())
	lines = append(lines, field+" "+button)

	if l.suggestCount > 0 {
		lines = append(lines, a.dropdown.View(a.width, a.focus == focusSuggestions))
	}
	if l.errorRow >= 0 {
		lines = append(lines, ErrorStyle.Render(a.fit(a.view.ErrorText(), 2)))
	}
	if l.loadingRow >= 0 {
		lines = append(lines, LoadingStyle.Render(a.spinner.View()+" Finding similar movies..."))
	}
	if l.selectedRow >= 0 {
		label := SelectedMovieStyle.Render("Because you liked:") + " " +
			SelectedMovieName.Render(a.fit(a.results.InputMovie(), 22))
		lines = append(lines, "", label, "")
		for i := l.cardFirst; i < l.cardFirst+l.cardCount; i++ {
			lines = append(lines, a.results.CardView(i, a.width, a.focus == focusResults))
		}
	}

	lines = append(lines, "", a.statusBar())
	return strings.Join(lines, "\n")
}

func (a App) header() string {
	title := HeaderStyle.Render("flick")
	switch {
	case a.health == nil:
	case a.health.Online():
		title += HealthOnline.Render(fmt.Sprintf("● online · %d movies", a.health.TotalMovies)) + " "
	default:
		title += HealthOffline.Render("○ offline") + " "
	}
	if a.baseURL == "" {
		return title
	}
	return title + HeaderSubtle.Render(a.fit(a.baseURL, ansi.StringWidth(title)+1))
}

func (a App) statusBar() string {
	keys := []struct{ key, desc string }{
		{"enter", "search"},
		{"↑↓", "move"},
		{"tab", "focus"},
		{"esc", "dismiss"},
		{"ctrl+d", "debug"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = StatusBarKey.Render(k.key) + StatusBarText.Render(":"+k.desc)
	}
	return ansi.Truncate(" "+strings.Join(parts, "  "), max(a.width, 1), "")
}

// fit truncates s so it fits the terminal after reserved columns.
func (a App) fit(s string, reserved int) string {
	w := a.width - reserved
	if w < 8 {
		w = 8
	}
	return ansi.Truncate(s, w, "…")
}
