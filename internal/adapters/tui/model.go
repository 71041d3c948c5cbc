// Package tui is the terminal presentation of a pairing session. Dragging is
// replaced by picking an image up and dropping it on a box.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"svw.info/pairing/internal/domain"
	"svw.info/pairing/internal/usecase"
)

type stage int

const (
	stagePrompt stage = iota
	stageBoard
	stageConfirm
	stageSaving
	stageSaved
)

type focusArea int

const (
	focusPool focusArea = iota
	focusSlots
)

// columns is the number of target/box pairs per row.
const columns = 3

type savedMsg struct {
	meta domain.ReportMeta
	err  error
}

// Model is the bubbletea model of one participant session.
type Model struct {
	ctx    context.Context
	uc     *usecase.Service
	styles Styles

	stage stage
	input textinput.Model
	view  domain.SessionView

	focus    focusArea
	poolCur  int
	slotCur  int
	held     domain.Item
	status   string
	err      error
	saved    *domain.ReportMeta
	canceled bool
}

// New returns a model that starts at the session code prompt.
func New(ctx context.Context, uc *usecase.Service) Model {
	in := textinput.New()
	in.Placeholder = "code name"
	in.CharLimit = 64
	in.Width = 30
	in.Focus()
	return Model{ctx: ctx, uc: uc, styles: DefaultStyles(), input: in}
}

// Canceled reports whether the participant left the code prompt without a code.
func (m Model) Canceled() bool { return m.canceled }

// Saved returns the written result file, if the session got that far.
func (m Model) Saved() (domain.ReportMeta, bool) {
	if m.saved == nil {
		return domain.ReportMeta{}, false
	}
	return *m.saved, true
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		return m.onSaved(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.stage == stagePrompt {
				m.canceled = true
			}
			m.end()
			return m, tea.Quit
		}
		switch m.stage {
		case stagePrompt:
			return m.updatePrompt(msg)
		case stageBoard:
			return m.updateBoard(msg)
		case stageConfirm:
			return m.updateConfirm(msg)
		case stageSaving:
			if msg.String() == "enter" && m.err != nil {
				m.err = nil
				return m, m.save()
			}
		case stageSaved:
			return m.updateSaved(msg)
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyEnter:
		code := strings.TrimSpace(m.input.Value())
		if code == "" {
			m.canceled = true
			return m, tea.Quit
		}
		v, err := m.uc.Start(m.ctx, code)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.view = v
		m.stage = stageBoard
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	key := msg.String()
	switch key {
	case "tab":
		m.toggleFocus()
	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case "up", "k":
		if m.focus == focusSlots {
			m.move(-columns)
		}
	case "down", "j":
		if m.focus == focusSlots {
			m.move(columns)
		} else {
			m.focus = focusSlots
		}
	case "enter", " ":
		return m.activate()
	case "esc":
		m.held = domain.None
		m.status = ""
	case "d", "x", "backspace", "delete":
		if m.focus == focusSlots {
			m.remove(m.slotCur)
		}
	case "n":
		return m.advance()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		slot := int(key[0] - '1')
		if m.held != domain.None && slot < len(m.view.Slots) {
			m.slotCur = slot
			return m.drop(slot)
		}
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusPool {
		m.focus = focusSlots
	} else {
		m.focus = focusPool
	}
}

func (m *Model) move(delta int) {
	if m.focus == focusPool {
		m.poolCur = clamp(m.poolCur+delta, len(m.view.Pool))
	} else {
		m.slotCur = clamp(m.slotCur+delta, len(m.view.Slots))
	}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// activate picks up the image under the cursor, or drops the held one.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.focus == focusPool {
		if m.poolCur < len(m.view.Pool) {
			m.held = m.view.Pool[m.poolCur].Item
			m.focus = focusSlots
			m.status = fmt.Sprintf("holding %s: choose a box", m.held)
		}
		return m, nil
	}
	if m.held != domain.None {
		return m.drop(m.slotCur)
	}
	if occ := m.view.Slots[m.slotCur].Occupant; occ != domain.None {
		m.held = occ
		m.status = fmt.Sprintf("holding %s: choose a box", m.held)
	}
	return m, nil
}

func (m Model) drop(slot int) (tea.Model, tea.Cmd) {
	out, v, err := m.uc.Place(m.ctx, m.view.ID, m.held, slot)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.view = v
	switch out.Status {
	case domain.NeedsConfirmation:
		m.stage = stageConfirm
		m.status = ""
		return m, nil
	case domain.NoOp:
		m.status = ""
	default:
		m.status = describe(out)
	}
	m.held = domain.None
	return m, nil
}

func describe(out domain.PlacementOutcome) string {
	if out.Freed != domain.None {
		return fmt.Sprintf("placed %s, %s is available again", out.Placed, out.Freed)
	}
	return fmt.Sprintf("placed %s", out.Placed)
}

func (m *Model) remove(slot int) {
	freed, v, err := m.uc.Remove(m.ctx, m.view.ID, slot)
	if err != nil {
		m.err = err
		return
	}
	m.view = v
	if freed != domain.None {
		m.status = fmt.Sprintf("%s is available again", freed)
	}
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		v   domain.SessionView
		err error
	)
	switch msg.String() {
	case "y", "Y":
		var out domain.PlacementOutcome
		out, v, err = m.uc.Confirm(m.ctx, m.view.ID)
		if err == nil {
			m.status = describe(out)
		}
	case "n", "N", "esc", "enter":
		v, err = m.uc.Cancel(m.ctx, m.view.ID)
		m.status = "kept the current image"
	default:
		return m, nil
	}
	m.stage = stageBoard
	m.held = domain.None
	if err != nil {
		m.err = err
		return m, nil
	}
	m.view = v
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if !m.view.Complete {
		return m, nil
	}
	tr, v, err := m.uc.Advance(m.ctx, m.view.ID)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.view = v
	m.held = domain.None
	m.focus, m.poolCur, m.slotCur = focusPool, 0, 0
	m.status = ""
	if tr == domain.TransitionSave {
		m.stage = stageSaving
		return m, m.save()
	}
	return m, nil
}

func (m Model) save() tea.Cmd {
	ctx, uc, id := m.ctx, m.uc, m.view.ID
	return func() tea.Msg {
		meta, err := uc.Save(ctx, id)
		return savedMsg{meta: meta, err: err}
	}
}

func (m Model) onSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.saved = &msg.meta
	m.stage = stageSaved
	return m, nil
}

func (m Model) updateSaved(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "q", "enter":
		m.end()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) end() {
	if m.view.ID != "" {
		_ = m.uc.End(m.ctx, m.view.ID)
	}
}

func (m Model) View() string {
	var sb strings.Builder
	switch m.stage {
	case stagePrompt:
		sb.WriteString(m.styles.Title.Render("Enter code name:") + "\n\n")
		sb.WriteString(m.input.View() + "\n\n")
		sb.WriteString(m.styles.Muted.Render("[Enter] OK  [Esc] Cancel"))
	case stageSaving:
		if m.err != nil {
			sb.WriteString(m.styles.Error.Render(m.err.Error()) + "\n\n")
			sb.WriteString(m.styles.Muted.Render("[Enter] Retry  [Ctrl+C] Quit without saving"))
		} else {
			sb.WriteString("Saving answers...")
		}
		return sb.String()
	case stageSaved:
		sb.WriteString(m.styles.Title.Render("Answers saved,\nThank you!") + "\n\n")
		if m.saved != nil {
			sb.WriteString(m.styles.Muted.Render(m.saved.Name) + "\n\n")
		}
		sb.WriteString("Quit? [y]")
		return sb.String()
	default:
		sb.WriteString(m.renderBoard())
	}
	if m.err != nil {
		sb.WriteString("\n" + m.styles.Error.Render(errText(m.err)))
	}
	return sb.String()
}

func errText(err error) string {
	if errors.Is(err, domain.ErrNotComplete) {
		return "Fill every box first."
	}
	return err.Error()
}

func (m Model) renderBoard() string {
	v := m.view
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Part %d of %d", v.Step, domain.PhaseCount)) + "\n\n")

	var rows []string
	for start := 0; start < len(v.Slots); start += columns {
		var cells []string
		for i := start; i < start+columns && i < len(v.Slots); i++ {
			cells = append(cells, m.renderSlot(v.Slots[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n\n")

	var pool []string
	for i, p := range v.Pool {
		style := m.styles.Available
		if p.Placed {
			style = m.styles.Placed
		}
		label := string(p.Item)
		if m.focus == focusPool && i == m.poolCur {
			label = m.styles.Cursor.Render("> " + label)
		}
		pool = append(pool, style.Render(label))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pool...) + "\n\n")

	button := m.styles.ButtonOff
	if v.Complete {
		button = m.styles.Button
	}
	sb.WriteString(button.Render(v.Action+" [n]") + "\n")

	if m.stage == stageConfirm {
		sb.WriteString("\n" + m.styles.Title.Render("Replace the current image? [y/N]") + "\n")
	} else if m.status != "" {
		sb.WriteString("\n" + m.status + "\n")
	}
	sb.WriteString(m.styles.Muted.Render("[Tab] switch row  [←→] move  [Enter] pick up / drop  [1-6] drop  [d] clear box  [Esc] let go"))
	return sb.String()
}

func (m Model) renderSlot(s domain.SlotView) string {
	target := m.styles.Target.Render(string(s.Target))
	box := m.styles.Box
	label := "Drop Here"
	if s.Occupant != domain.None {
		box = m.styles.BoxFilled
		label = string(s.Occupant)
	}
	if m.focus == focusSlots && s.Index == m.slotCur {
		label = m.styles.Cursor.Render("> " + label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, target, box.Render(label), "   ")
}
