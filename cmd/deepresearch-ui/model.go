package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alan-mat/deepresearch/internal/storage"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	gap = "\n\n"

	title          = "AI Research Assistant"
	emptyQueryText = "Please enter a topic."
	fetchErrorText = "Error fetching research."

	requestTimeout = 5 * time.Minute
)

type researcher interface {
	Research(ctx context.Context, query string) (string, error)
}

type fileWriter interface {
	Write(query string, content string) (string, error)
	WriteFile(name string, content string) (string, error)
}

type researchMsg struct {
	query    string
	response string
	path     string
	err      error
	writeErr error
}

type savedMsg struct {
	path string
	err  error
}

type model struct {
	client    researcher
	responses fileWriter
	downloads fileWriter

	query   string
	result  string
	status  string
	loading bool

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	errStyle    lipgloss.Style
}

func initialModel(c researcher, responses fileWriter, downloads fileWriter) model {
	ta := textarea.New()
	ta.Placeholder = "Enter a research topic..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetWidth(30)
	ta.SetHeight(1)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(30, 5)
	vp.SetContent("Type a topic and press Enter to research it.\nctrl+s saves the summary, esc quits.")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		client:      c,
		responses:   responses,
		downloads:   downloads,
		textarea:    ta,
		viewport:    vp,
		spinner:     sp,
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("31")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// fetchResearch queries the API and keeps a local copy of the summary,
// named like the server's response files.
func fetchResearch(c researcher, responses fileWriter, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := c.Research(ctx, query)
		if err != nil {
			return researchMsg{query: query, err: err}
		}

		path, err := responses.Write(query, resp)
		return researchMsg{query: query, response: resp, path: path, writeErr: err}
	}
}

func saveDownload(downloads fileWriter, query string, content string) tea.Cmd {
	return func() tea.Msg {
		path, err := downloads.WriteFile(query+storage.Extension, content)
		return savedMsg{path: path, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.textarea.SetWidth(msg.Width)
		m.viewport.Height = msg.Height - m.textarea.Height() - 2*lipgloss.Height(gap) - 2
		m.setContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			q := m.textarea.Value()
			if strings.TrimSpace(q) == "" {
				m.status = m.warnStyle.Render(emptyQueryText)
				return m, nil
			}

			m.query = q
			m.loading = true
			m.status = ""
			m.textarea.Blur()
			return m, tea.Batch(m.spinner.Tick, fetchResearch(m.client, m.responses, q))
		case tea.KeyCtrlS:
			if m.loading || m.result == "" {
				return m, nil
			}
			return m, saveDownload(m.downloads, m.query, m.result)
		}

	case researchMsg:
		m.loading = false
		m.textarea.Focus()
		if msg.err != nil {
			m.result = ""
			m.status = m.errStyle.Render(fetchErrorText)
			m.viewport.SetContent("")
			return m, nil
		}

		m.result = msg.response
		if msg.writeErr != nil {
			m.status = m.warnStyle.Render(fmt.Sprintf("Could not write %s: %v", storage.FileName(msg.query), msg.writeErr))
		} else {
			m.status = m.statusStyle.Render("Saved to " + msg.path)
		}
		m.setContent()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = m.errStyle.Render(fmt.Sprintf("Download failed: %v", msg.err))
		} else {
			m.status = m.statusStyle.Render("Downloaded to " + msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m *model) setContent() {
	if m.result == "" {
		return
	}

	header := m.titleStyle.Render("Research Results for: " + m.query)
	body := header + gap + m.result
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(body))
	m.viewport.GotoTop()
}

func (m model) View() string {
	status := m.status
	if m.loading {
		status = m.spinner.View() + " Fetching research..."
	}

	return strings.Join([]string{
		m.titleStyle.Render(title),
		m.viewport.View(),
		m.textarea.View(),
		status,
	}, gap)
}
