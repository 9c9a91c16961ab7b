package recommend

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/abelbrown/flick/internal/api"
)

const (
	fps      = 60
	barWidth = 20
	// settle is the distance below which a bar snaps to its target.
	settle = 0.002
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	activeTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
)

// Frame drives the bar animation. Gen ties a frame to one result set so a
// superseded animation loop stops on its own.
type Frame struct {
	Gen  int
	Time time.Time
}

// Card is one recommended movie.
type Card struct {
	Title   string
	Score   float64
	Percent int

	fill     float64 // animated bar position, 0..Percent/100
	velocity float64
	startAt  time.Time
}

// Fill returns the bar's current animated position in [0, 1].
func (c Card) Fill() float64 {
	return c.fill
}

// Target returns the bar's final position in [0, 1].
func (c Card) Target() float64 {
	return float64(c.Percent) / 100
}

// Percent converts a similarity score to a whole percentage.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}

// Results holds the echoed input movie and its cards.
type Results struct {
	inputMovie string
	cards      []Card
	cursor     int
	gen        int
	stagger    time.Duration
	spring     harmonica.Spring
	bar        progress.Model
}

// NewResults creates an empty result set whose bars start animating
// stagger apart.
func NewResults(stagger time.Duration) Results {
	return Results{
		stagger: stagger,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		bar: progress.New(
			progress.WithGradient("#5A56E0", "#EE6FF8"),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		),
	}
}

// Set replaces the result set. Every bar starts at 0; card i begins moving
// i*stagger after now.
func (r *Results) Set(inputMovie string, recs []api.Recommendation, now time.Time) {
	r.gen++
	r.inputMovie = inputMovie
	r.cursor = 0
	r.cards = make([]Card, len(recs))
	for i, rec := range recs {
		r.cards[i] = Card{
			Title:   rec.Title,
			Score:   rec.SimilarityScore,
			Percent: Percent(rec.SimilarityScore),
			startAt: now.Add(time.Duration(i) * r.stagger),
		}
	}
}

// Clear drops all cards and stops any running animation.
func (r *Results) Clear() {
	r.gen++
	r.inputMovie = ""
	r.cards = nil
	r.cursor = 0
}

// InputMovie returns the movie the service echoed back.
func (r Results) InputMovie() string {
	return r.inputMovie
}

// Cards returns the current cards.
func (r Results) Cards() []Card {
	return r.cards
}

// Len returns the number of cards.
func (r Results) Len() int {
	return len(r.cards)
}

// Gen identifies the current result set.
func (r Results) Gen() int {
	return r.gen
}

// Cursor returns the highlighted card.
func (r Results) Cursor() int {
	return r.cursor
}

// MoveDown highlights the next card.
func (r *Results) MoveDown() {
	if r.cursor < len(r.cards)-1 {
		r.cursor++
	}
}

// MoveUp highlights the previous card, returning false at the top.
func (r *Results) MoveUp() bool {
	if r.cursor == 0 {
		return false
	}
	r.cursor--
	return true
}

// SetCursor highlights card i if it exists.
func (r *Results) SetCursor(i int) {
	if i >= 0 && i < len(r.cards) {
		r.cursor = i
	}
}

// Selected returns the highlighted card.
func (r Results) Selected() (Card, bool) {
	if r.cursor < 0 || r.cursor >= len(r.cards) {
		return Card{}, false
	}
	return r.cards[r.cursor], true
}

// Step advances every started bar by one spring frame and reports whether
// any bar is still moving or waiting to start.
func (r *Results) Step(now time.Time) bool {
	busy := false
	for i := range r.cards {
		c := &r.cards[i]
		if now.Before(c.startAt) {
			busy = true
			continue
		}
		target := c.Target()
		if c.fill == target && c.velocity == 0 {
			continue
		}
		c.fill, c.velocity = r.spring.Update(c.fill, c.velocity, target)
		if math.Abs(c.fill-target) < settle && math.Abs(c.velocity) < settle {
			c.fill, c.velocity = target, 0
			continue
		}
		busy = true
	}
	return busy
}

// Animating reports whether any bar has not reached its target yet.
func (r Results) Animating() bool {
	for _, c := range r.cards {
		if c.fill != c.Target() || c.velocity != 0 {
			return true
		}
	}
	return false
}

// Tick schedules the next animation frame for the current result set.
func (r Results) Tick() tea.Cmd {
	gen := r.gen
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg {
		return Frame{Gen: gen, Time: t}
	})
}

// CardView renders card i as a single line.
func (r Results) CardView(i int, width int, focused bool) string {
	c := r.cards[i]
	nameWidth := width - barWidth - 18
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := ansi.Truncate(c.Title, nameWidth, "…")
	name += strings.Repeat(" ", max(0, nameWidth-ansi.StringWidth(name)))

	style := titleStyle
	marker := "  "
	if focused && i == r.cursor {
		style = activeTitleStyle
		marker = "▸ "
	}

	return fmt.Sprintf("%s%s %s %s %s",
		marker,
		style.Render(name),
		labelStyle.Render("Match"),
		r.bar.ViewAs(c.fill),
		scoreStyle.Render(fmt.Sprintf("%3d%%", c.Percent)),
	)
}

// View renders every card, one per line.
func (r Results) View(width int, focused bool) string {
	lines := make([]string, len(r.cards))
	for i := range r.cards {
		lines[i] = r.CardView(i, width, focused)
	}
	return strings.Join(lines, "\n")
}
