// Package tui is the interactive preview behind `braille preview`. It shows
// the source next to its braille rendering and re-renders in the background
// as scale, threshold, invert or the input text change.
package tui

import (
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	braille "github.com/blacktop/go-braille"
)

// Mode selects what gets converted
type Mode int

const (
	ImageMode Mode = iota
	TextMode
)

func (m Mode) String() string {
	if m == TextMode {
		return "text"
	}
	return "image"
}

// Control ranges
const (
	ScaleStep     = 10
	MinScale      = 10
	MaxScale      = 400
	ThresholdStep = 8

	pollInterval = 50 * time.Millisecond
)

// Options configures the preview
type Options struct {
	// Image is the source for image mode; nil starts in text mode
	Image image.Image
	// Name labels the image in the title bar
	Name string
	// Text pre-fills the text mode input
	Text      string
	Params    braille.Params
	Resizer   braille.Resizer
	BaseWidth int
	Workers   int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model for the preview
type Model struct {
	keys  keyMap
	help  help.Model
	input textarea.Model
	theme theme

	mode   Mode
	params braille.Params

	name     string
	imageSrc braille.Source
	preview  *previewWidget

	textValue string
	textSrc   braille.Source

	worker    *braille.AsyncRenderWorker
	scheduled braille.Source
	doc       braille.Document
	err       error
	pending   bool

	status        string
	width, height int

	copyText func(string) error
	saveText func(path, text string) error
}

// New builds the model and schedules the first render
func New(opts Options) Model {
	params := opts.Params
	if params == (braille.Params{}) {
		params = braille.DefaultParams()
	}
	params.ScalePercent = clamp(params.ScalePercent, MinScale, MaxScale)
	params.Threshold = clamp(params.Threshold, 0, 255)

	input := textarea.New()
	input.Placeholder = "Type something..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetValue(opts.Text)

	conv := &braille.Converter{
		BaseWidth: opts.BaseWidth,
		Resizer:   braille.NewResizeCache(opts.Resizer, 0),
		Workers:   opts.Workers,
	}

	m := Model{
		keys:     newKeyMap(),
		help:     help.New(),
		input:    input,
		theme:    darkTheme,
		mode:     TextMode,
		params:   params,
		name:     opts.Name,
		worker:   braille.NewAsyncRenderWorker(conv, braille.AsyncWorkerOptions{}),
		copyText: clipboard.WriteAll,
		saveText: braille.SaveDocument,
	}

	if opts.Image != nil {
		m.mode = ImageMode
		m.imageSrc = braille.FromImage(opts.Image)
		m.preview = newPreviewWidget(opts.Image)
		m.keys.controlsActive = true
	} else {
		m.input.Focus()
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.setSize(w, h)
	}

	m.schedule()
	return m
}

// Run starts the preview in the alternate screen and blocks until it exits
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}

// Close stops the background renderer
func (m Model) Close() {
	m.worker.Close()
}

// Document returns the most recent completed render
func (m Model) Document() braille.Document {
	return m.doc
}

// Params returns the current conversion parameters
func (m Model) Params() braille.Params {
	return m.params
}

// Mode returns the current input mode
func (m Model) Mode() Mode {
	return m.mode
}

// Pending reports whether a render for the current input is still running
func (m Model) Pending() bool {
	return m.pending
}

func (m Model) Init() tea.Cmd {
	if m.mode == TextMode {
		return tea.Batch(tick(), textarea.Blink)
	}
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.collect()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == TextMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Mode):
		cmd := m.toggleMode()
		return m, cmd
	}

	// while editing, everything except the keys above goes to the input
	if m.mode == TextMode && m.input.Focused() {
		if key.Matches(msg, m.keys.Edit) {
			m.input.Blur()
			m.keys.controlsActive = true
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.textValue {
			m.schedule()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		if m.mode == TextMode {
			m.keys.controlsActive = false
			cmd := m.input.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.ScaleUp):
		m.setScale(m.params.ScalePercent + ScaleStep)
	case key.Matches(msg, m.keys.ScaleDown):
		m.setScale(m.params.ScalePercent - ScaleStep)
	case key.Matches(msg, m.keys.ThresholdUp):
		m.setThreshold(m.params.Threshold + ThresholdStep)
	case key.Matches(msg, m.keys.ThresholdDown):
		m.setThreshold(m.params.Threshold - ThresholdStep)
	case key.Matches(msg, m.keys.Invert):
		m.params.Invert = !m.params.Invert
		m.schedule()
	case key.Matches(msg, m.keys.Theme):
		if m.theme.name == darkTheme.name {
			m.theme = lightTheme
		} else {
			m.theme = darkTheme
		}
	case key.Matches(msg, m.keys.Copy):
		m.copy()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) toggleMode() tea.Cmd {
	m.status = ""
	if m.mode == ImageMode {
		m.mode = TextMode
		m.keys.controlsActive = false
		m.schedule()
		return m.input.Focus()
	}
	m.mode = ImageMode
	m.input.Blur()
	m.keys.controlsActive = true
	m.schedule()
	return nil
}

func (m *Model) setScale(v int) {
	v = clamp(v, MinScale, MaxScale)
	if v == m.params.ScalePercent {
		return
	}
	m.params.ScalePercent = v
	m.schedule()
}

func (m *Model) setThreshold(v int) {
	v = clamp(v, 0, 255)
	if v == m.params.Threshold {
		return
	}
	m.params.Threshold = v
	m.schedule()
}

// source returns what the current mode converts, or nil if there is nothing
func (m *Model) source() braille.Source {
	if m.mode == ImageMode {
		return m.imageSrc
	}
	value := m.input.Value()
	if value != m.textValue || m.textSrc == nil {
		m.textValue = value
		m.textSrc = nil
		if value != "" {
			m.textSrc = braille.FromText(value)
		}
	}
	return m.textSrc
}

func (m *Model) schedule() {
	src := m.source()
	m.scheduled = src
	if src == nil {
		m.doc, m.err, m.pending = braille.Document{}, nil, false
		return
	}
	m.pending = true
	m.worker.Schedule(src, m.params)
}

// collect picks up the latest render if it matches what is on screen
func (m *Model) collect() {
	if !m.pending {
		return
	}
	res, ok := m.worker.TryLatest()
	if !ok || res.Source != m.scheduled || res.Params != m.params {
		return
	}
	m.doc, m.err, m.pending = res.Document, res.Err, false
}

func (m *Model) copy() {
	if m.doc.Empty() {
		m.status = "nothing to copy"
		return
	}
	if err := m.copyText(m.doc.Text); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied %d characters", m.doc.Length)
}

func (m *Model) save() {
	if m.doc.Empty() {
		m.status = "nothing to save"
		return
	}
	if err := m.saveText(braille.DefaultFilename, m.doc.Text); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + braille.DefaultFilename
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	w, h := m.paneSize()
	m.input.SetWidth(w)
	m.input.SetHeight(h)
	if m.preview != nil {
		m.preview.SetSize(w, h)
	}
}

// paneSize is the content area of each of the two panels
func (m Model) paneSize() (int, int) {
	// border and horizontal padding take 4 columns per panel
	w := m.width/2 - 4
	// title, panel borders, status and help
	h := m.height - 5
	return max(w, 1), max(h, 1)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := fmt.Sprintf("Braille Art - %s mode - %s", m.mode, m.params)
	if m.mode == ImageMode && m.name != "" {
		title += " - " + m.name
	}
	header := m.theme.title.Width(m.width).Render(title)

	w, h := m.paneSize()
	left := m.theme.panel.Width(w + 2).Height(h).Render(m.sourceView())
	right := m.theme.panel.Width(w + 2).Height(h).Render(m.artView(w, h))
	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		panels,
		m.statusView(),
		m.help.View(m.keys),
	)
}

func (m Model) sourceView() string {
	if m.mode == TextMode {
		return m.input.View()
	}
	if m.preview == nil {
		return m.theme.muted.Render("No image loaded. Press tab to type text.")
	}
	return m.preview.Render()
}

func (m Model) artView(w, h int) string {
	switch {
	case m.err != nil:
		return m.theme.errText.Render("Error: " + m.err.Error())
	case m.doc.Empty() && m.pending:
		return m.theme.muted.Render("Rendering...")
	case m.doc.Empty():
		return m.theme.muted.Render("Nothing to show. Try another threshold or invert.")
	}
	return m.theme.art.MaxWidth(w).MaxHeight(h).Render(m.doc.Text)
}

func (m Model) statusView() string {
	parts := []string{
		m.theme.key.Render(fmt.Sprintf("%d", m.doc.Length)) + " characters",
		fmt.Sprintf("%d lines", m.doc.Lines),
	}
	if m.doc.Dimensions.Cells > 0 {
		parts = append(parts, m.doc.Dimensions.String())
	}
	if m.pending {
		parts = append(parts, "rendering")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.theme.status.Render(strings.Join(parts, " | "))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
