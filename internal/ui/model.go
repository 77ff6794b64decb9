package ui

import (
	"context"
	"reflect"
	"strconv"

	"charm.land/bubbles/v2/cursor"
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/thesaurus/internal/session"
	"github.com/atomicstack/thesaurus/internal/theme"
	"github.com/atomicstack/thesaurus/internal/ui/command"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config describes how the model is built. Word, when non-empty, is looked
// up as soon as the program starts; Context bounds lookups started by the
// model.
type Config struct {
	Width       int
	Height      int
	ShowFooter  bool
	SpellingFix bool
	Word        string
	Looker      command.Looker
	Context     context.Context
}

// Model implements the Bubble Tea model for the dictionary browser.
type Model struct {
	session     *session.Session
	bus         *command.Bus
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	initialWord string
	seq         int
	pendingID   string
	caret       cursor.Model
	caretDirty  bool
	help        help.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with an empty session.
func NewModel(cfg Config) *Model {
	m := &Model{
		session:     session.New(session.WithSpellingFix(cfg.SpellingFix)),
		bus:         command.New(cfg.Context, cfg.Looker),
		showFooter:  cfg.ShowFooter,
		initialWord: cfg.Word,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.SearchEditing != nil {
		c.TextStyle = *styles.SearchEditing
	}
	c.SetChar(" ")
	m.caret = c

	h := help.New()
	if styles.FooterKey != nil {
		h.Styles.ShortKey = *styles.FooterKey
	}
	if styles.Footer != nil {
		h.Styles.ShortDesc = *styles.Footer
		h.Styles.ShortSeparator = *styles.Footer
	}
	m.help = h

	m.registerHandlers()
	return m
}

// Session exposes the state machine behind the model.
func (m *Model) Session() *session.Session {
	return m.session
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.initialWord != "" {
		if req, ok := m.session.Submit(m.initialWord); ok {
			cmds = append(cmds, m.execute(req))
		}
		m.initialWord = ""
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaret(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyPressMsg{}):   m.handleKeyMsg,
		reflect.TypeOf(tea.PasteMsg{}):      m.handlePasteMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}
	return m.applyKey(toSessionKey(keyMsg))
}

// handlePasteMsg feeds pasted text to the session under a name no binding
// matches, so a paste only ever inserts text.
func (m *Model) handlePasteMsg(msg tea.Msg) tea.Cmd {
	paste, ok := msg.(tea.PasteMsg)
	if !ok || paste.Content == "" {
		return nil
	}
	return m.applyKey(session.Key{Name: "paste", Runes: []rune(paste.Content)})
}

func (m *Model) applyKey(k session.Key) tea.Cmd {
	before := m.session.Query()
	beforeText, beforePos := before.String(), before.Cursor()
	req, commit := m.session.HandleKey(k)
	if after := m.session.Query(); after.Cursor() != beforePos || after.String() != beforeText {
		m.caretDirty = true
	}
	if m.session.ShouldQuit() {
		return tea.Quit
	}
	if commit {
		return m.execute(req)
	}
	return nil
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	if res.ID != m.pendingID {
		return nil
	}
	m.pendingID = ""
	m.session.Complete(res.Result)
	m.caretDirty = true
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) execute(req session.Request) tea.Cmd {
	m.seq++
	m.pendingID = "lookup-" + strconv.Itoa(m.seq)
	return m.bus.Execute(command.Request{
		ID:          m.pendingID,
		Label:       req.Word,
		Word:        req.Word,
		SpellingFix: req.SpellingFix,
	})
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.caretDirty {
		m.caretDirty = false
		m.caret.IsBlinked = false
		if cmd := m.caret.Blink(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
