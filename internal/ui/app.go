package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mlegall/pokedeck/internal/collection"
	"github.com/mlegall/pokedeck/internal/detail"
	"github.com/mlegall/pokedeck/internal/favorites"
	"github.com/mlegall/pokedeck/internal/pokeapi"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewDetail
	ViewForm
	ViewFavorites
)

// maxSearchLength bounds a committed search query.
const maxSearchLength = 50

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    pokeapi.Catalog
	Engine    *collection.Engine
	Favorites *favorites.Store
	Log       zerolog.Logger
}

// notifier forwards out-of-band events — favorites observers, reconciler
// invalidations — into the running program. Posts before bind are dropped.
type notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *notifier) bind(send func(tea.Msg)) {
	n.mu.Lock()
	n.send = send
	n.mu.Unlock()
}

func (n *notifier) post(msg tea.Msg) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx    context.Context
	client pokeapi.Catalog
	engine *collection.Engine
	favs   *favorites.Store
	log    zerolog.Logger
	notify *notifier

	// UI state
	keys        keyMap
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Catalog state
	view          collection.View
	selectedRow   int
	searchInput   textinput.Model
	searchFocused bool
	suggestions   []pokeapi.Pokemon
	filterOverlay bool
	filterIndex   int

	// Detail state
	entry         *detail.Reconciler
	confirmDelete bool

	// Form state
	form *entryForm

	// Favorites state
	favRows     []pokeapi.Pokemon
	favSelected int

	// Status line
	status  string
	errText string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "nom français…"
	input.CharLimit = maxSearchLength
	input.Prompt = "🔍 "

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		engine:      opts.Engine,
		favs:        opts.Favorites,
		log:         opts.Log,
		notify:      &notifier{},
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		currentView: ViewCatalog,
		searchInput: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.refreshCatalogCmd(),
		m.refreshMirrorCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case catalogMsg:
		m.view = collection.View(msg)
		m.clampSelection()
		if m.view.LastError != nil {
			m.errText = m.view.LastError.Error()
		} else {
			m.errText = ""
		}
		return m, nil

	case catalogStaleMsg:
		return m, m.invalidateCmd()

	case favoritesChangedMsg:
		m.favRows = m.engine.ResolveFavorites(m.favs.All())
		if m.favSelected >= len(m.favRows) {
			m.favSelected = max(0, len(m.favRows)-1)
		}
		return m, nil

	case searchHitMsg:
		m.engine.Commit(pokeapi.Pokemon(msg))
		m.searchFocused = false
		m.searchInput.Blur()
		m.suggestions = nil
		m.selectedRow = 0
		return m, m.snapshotCmd()

	case detailReadyMsg:
		m.entry = detail.New(m.client, m.favs, pokeapi.Pokemon(msg), func() {
			m.notify.post(catalogStaleMsg{})
		})
		m.currentView = ViewDetail
		m.confirmDelete = false
		m.errText = ""
		return m, nil

	case savedMsg:
		m.form = nil
		m.currentView = ViewDetail
		m.status = "modifications enregistrées"
		m.errText = ""
		return m, nil

	case deletedMsg:
		m.entry = nil
		m.currentView = ViewCatalog
		m.status = "pokémon supprimé"
		m.errText = ""
		return m, nil

	case createdMsg:
		m.form = nil
		m.status = "pokémon créé : " + pokeapi.Pokemon(msg).Name.English
		m.errText = ""
		return m, tea.Batch(m.invalidateCmd(), m.openDetailCmd(pokeapi.Pokemon(msg).ID))

	case errMsg:
		m.errText = msg.err.Error()
		m.log.Warn().Err(msg.err).Msg("operation failed")
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Chargement…"
	}
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewForm:
		return m.renderForm()
	case ViewFavorites:
		return m.renderFavorites()
	default:
		return m.renderCatalog()
	}
}

// handleKey processes keyboard input, routing to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Text inputs swallow most keys; only route globals when no input has
	// focus.
	if !m.searchFocused && m.form == nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		}
	} else if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewForm:
		return m.handleFormKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

func (m *Model) clampSelection() {
	if n := len(m.view.Items); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
}

func (m Model) selectedItem() (pokeapi.Pokemon, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.view.Items) {
		return pokeapi.Pokemon{}, false
	}
	return m.view.Items[m.selectedRow], true
}

// renderHelp draws the full key binding reference.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Pokédeck — raccourcis"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("  ")
			b.WriteString(m.styles.Success.Render(padRight(h.Key, 12)))
			b.WriteString(h.Desc)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("Appuyez sur une touche pour revenir."))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Messages

type catalogMsg collection.View

type catalogStaleMsg struct{}

type favoritesChangedMsg struct{}

type searchHitMsg pokeapi.Pokemon

type detailReadyMsg pokeapi.Pokemon

type savedMsg struct{}

type deletedMsg struct{}

type createdMsg pokeapi.Pokemon

type errMsg struct{ err error }

// Commands

// refreshCatalogCmd refetches the browse page when browsing and snapshots
// the engine either way. Live-filter and committed modes derive locally,
// so no page fetch is needed there.
func (m Model) refreshCatalogCmd() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		v := engine.Snapshot()
		if v.Mode == collection.ModeBrowse {
			_ = engine.RefreshPage(ctx)
			v = engine.Snapshot()
		}
		return catalogMsg(v)
	}
}

func (m Model) refreshMirrorCmd() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		_ = engine.RefreshMirror(ctx)
		return catalogMsg(engine.Snapshot())
	}
}

func (m Model) invalidateCmd() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		_ = engine.Invalidate(ctx)
		return catalogMsg(engine.Snapshot())
	}
}

// snapshotCmd re-derives the visible state without any network call.
func (m Model) snapshotCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		return catalogMsg(engine.Snapshot())
	}
}

func (m Model) commitSearchCmd(query string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		hit, err := client.SearchByName(ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return searchHitMsg(hit)
	}
}

func (m Model) openDetailCmd(id int) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		entry, err := client.GetByID(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return detailReadyMsg(entry)
	}
}

func (m Model) saveEntryCmd() tea.Cmd {
	ctx, rec := m.ctx, m.entry
	return func() tea.Msg {
		if err := rec.Commit(ctx); err != nil {
			return errMsg{err}
		}
		return savedMsg{}
	}
}

func (m Model) deleteEntryCmd() tea.Cmd {
	ctx, rec := m.ctx, m.entry
	return func() tea.Msg {
		if err := rec.Delete(ctx); err != nil {
			return errMsg{err}
		}
		return deletedMsg{}
	}
}

func (m Model) createEntryCmd(draft pokeapi.Draft) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		draft.Normalize()
		if err := draft.Validate(); err != nil {
			return errMsg{err}
		}
		created, err := client.Create(ctx, draft)
		if err != nil {
			return errMsg{err}
		}
		return createdMsg(created)
	}
}

// Run starts the Bubble Tea program. The favorites store is subscribed for
// the lifetime of the program so in-process mutations refresh the
// favorites view, wherever they originate.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.notify.bind(p.Send)

	if opts.Favorites != nil {
		unsubscribe := opts.Favorites.Subscribe(func() {
			m.notify.post(favoritesChangedMsg{})
		})
		defer unsubscribe()
	}

	_, err := p.Run()
	return err
}
