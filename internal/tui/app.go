package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/goals"
	"github.com/mfreed/larder/internal/library"
	"github.com/mfreed/larder/internal/search"
	"github.com/mfreed/larder/internal/tui/components"
	"github.com/mfreed/larder/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateGoals
	StateHelp
)

// LibraryTab selects which derived view the list shows.
type LibraryTab int

const (
	TabAll LibraryTab = iota
	TabFoods
	TabRecipes
)

// String returns the tab label.
func (t LibraryTab) String() string {
	switch t {
	case TabAll:
		return "All"
	case TabFoods:
		return "Foods"
	case TabRecipes:
		return "Recipes"
	default:
		return "Unknown"
	}
}

const chromeHeight = 3 // tab bar + search line + footer

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool

	// Services
	LibrarySvc *library.Service
	GoalsSvc   *goals.Service
	SearchSvc  *search.Service

	// UI components
	Tab          LibraryTab
	List         *components.ItemList
	SortModal    components.SortModal
	ConfirmModal components.ConfirmModal
	QuickFind    components.QuickFind
	GoalsView    GoalsView

	// App-level search input, bound to the library query
	searchInput textinput.Model

	// Pending delete target while the confirm modal is up
	deleteTarget domain.LibraryItem

	// Progress updates from sync
	progressCh chan domain.SyncProgress

	width  int
	height int

	status    string
	statusErr bool

	logger *slog.Logger
}

// NewModel creates the application model.
func NewModel(librarySvc *library.Service, goalsSvc *goals.Service, searchSvc *search.Service, showCalories bool, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	si := textinput.New()
	si.Placeholder = "search library..."
	si.Prompt = "/ "
	si.PromptStyle = styles.FilterPromptStyle
	si.TextStyle = styles.FilterStyle
	si.CharLimit = 100

	return &Model{
		LibrarySvc:   librarySvc,
		GoalsSvc:     goalsSvc,
		SearchSvc:    searchSvc,
		List:         components.NewItemList("All", showCalories),
		SortModal:    components.NewSortModal(),
		ConfirmModal: components.NewConfirmModal(),
		QuickFind:    components.NewQuickFind(),
		GoalsView:    NewGoalsView(),
		searchInput:  si,
		progressCh:   make(chan domain.SyncProgress, 16),
		logger:       logger,
	}
}

// Init shows any cached copy right away, then loads.
func (m *Model) Init() tea.Cmd {
	if m.LibrarySvc.LoadFromCache() {
		m.refreshList()
	} else {
		m.List.SetLoading(true)
	}
	return tea.Batch(
		SyncLibraryCmd(m.LibrarySvc, m.reportProgress),
		WaitForProgressCmd(m.progressCh),
	)
}

// reportProgress forwards load progress to the Bubble Tea loop.
func (m *Model) reportProgress(loaded, total int) {
	NewChannelObserver(m.progressCh).OnProgress(domain.SyncProgress{
		Loaded: loaded,
		Total:  total,
	})
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Ready = true
		m.layout()
		return m, nil

	case LibraryLoadedMsg:
		m.refreshList()
		m.List.SetLoading(false)
		if msg.Result.FromCache {
			m.setStatus(fmt.Sprintf("%d foods, %d recipes (cached)", msg.Result.Foods, msg.Result.Recipes), false)
		} else {
			m.setStatus(fmt.Sprintf("%d foods, %d recipes", msg.Result.Foods, msg.Result.Recipes), false)
		}
		return m, ClearStatusCmd()

	case SyncProgressMsg:
		if !msg.Progress.Done && msg.Progress.Total > 0 {
			m.setStatus(fmt.Sprintf("loading %d/%d...", msg.Progress.Loaded, msg.Progress.Total), false)
		}
		return m, WaitForProgressCmd(m.progressCh)

	case ItemDeletedMsg:
		m.refreshList()
		m.setStatus("deleted "+msg.Name, false)
		return m, ClearStatusCmd()

	case QuickFindResultsMsg:
		if m.QuickFind.IsVisible() && msg.Query == m.QuickFind.Query() {
			m.QuickFind.SetResults(msg.Results)
		}
		return m, nil

	case GoalsLoadedMsg:
		m.GoalsView.SetGoals(msg.Goals)
		return m, nil

	case GoalsSavedMsg:
		m.GoalsView.MarkSaved(msg.Goals)
		m.setStatus("goals saved", false)
		return m, ClearStatusCmd()

	case StatusClearMsg:
		m.status = ""
		return m, nil

	case ErrMsg:
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		m.List.SetLoading(false)
		m.setStatus(msg.Error(), true)
		return m, ClearStatusCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Modals get first claim on keys.
	if handled, selection := m.SortModal.HandleKey(key); handled {
		if selection != nil {
			m.LibrarySvc.SetSort(*selection)
			m.refreshList()
		}
		return m, nil
	}
	if handled, confirmed := m.ConfirmModal.HandleKey(key); handled {
		if confirmed && m.deleteTarget != nil {
			target := m.deleteTarget
			m.deleteTarget = nil
			return m, DeleteItemCmd(m.LibrarySvc, target)
		}
		m.deleteTarget = nil
		return m, nil
	}
	if m.QuickFind.IsVisible() {
		return m.handleQuickFindKey(msg)
	}

	switch m.State {
	case StateSearching:
		return m.handleSearchKey(msg)
	case StateGoals:
		return m.handleGoalsKey(key)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	}

	return m.handleBrowseKey(msg, key)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	// Inline filter typing swallows most keys.
	if m.List.IsFilterTyping() {
		return m, m.List.Update(msg)
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1":
		m.switchTab(TabAll)
	case "2":
		m.switchTab(TabFoods)
	case "3":
		m.switchTab(TabRecipes)
	case "tab":
		m.switchTab((m.Tab + 1) % 3)
	case "shift+tab":
		m.switchTab((m.Tab + 2) % 3)

	case "/":
		m.State = StateSearching
		m.searchInput.SetValue(m.LibrarySvc.Snapshot().Query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "f":
		m.List.StartFilter()
		m.layout()
		return m, nil

	case "ctrl+f":
		m.QuickFind.Show()
		return m, m.QuickFind.Init()

	case "s":
		m.SortModal.Show(m.LibrarySvc.Snapshot().Sort)

	case "r":
		m.List.SetLoading(true)
		return m, tea.Batch(
			RefreshLibraryCmd(m.LibrarySvc, m.reportProgress),
			WaitForProgressCmd(m.progressCh),
		)

	case "d", "x":
		if item := m.List.SelectedItem(); item != nil {
			m.deleteTarget = item
			m.ConfirmModal.Show("Delete "+item.DisplayName()+"?", item.Subtitle())
		}

	case "ctrl+g":
		m.State = StateGoals
		m.layout()
		if !m.GoalsView.IsLoaded() {
			return m, LoadGoalsCmd(m.GoalsSvc)
		}

	case "?":
		m.State = StateHelp

	case "esc":
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			m.layout()
		} else if m.LibrarySvc.Snapshot().Query != "" {
			m.LibrarySvc.SetQuery("")
			m.refreshList()
		}

	default:
		return m, m.List.Update(msg)
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateBrowsing
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.LibrarySvc.SetQuery("")
		m.refreshList()
		return m, nil
	case "enter":
		m.State = StateBrowsing
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.LibrarySvc.SetQuery(m.searchInput.Value())
	m.refreshList()
	return m, cmd
}

func (m *Model) handleQuickFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var selected bool
	m.QuickFind, cmd, selected = m.QuickFind.Update(msg)

	if selected {
		item := m.QuickFind.Selected()
		m.QuickFind.Hide()
		if item != nil {
			m.jumpTo(item)
		}
		return m, nil
	}

	if m.QuickFind.IsVisible() && m.QuickFind.QueryChanged() {
		return m, tea.Batch(cmd, QuickFindCmd(m.SearchSvc, m.QuickFind.Query(), m.LibrarySvc.All()))
	}
	return m, cmd
}

func (m *Model) handleGoalsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+g":
		m.State = StateBrowsing
		m.layout()
		return m, nil
	case "ctrl+s":
		if m.GoalsView.IsDirty() {
			return m, SaveGoalsCmd(m.GoalsSvc, m.GoalsView.Edited())
		}
		return m, nil
	case "u":
		m.GoalsView.Revert()
		return m, nil
	}

	m.GoalsView.HandleKey(key)
	return m, nil
}

// jumpTo lands the cursor on an item, switching tabs when the current
// one hides its variant.
func (m *Model) jumpTo(item domain.LibraryItem) {
	key := domain.ItemKey(item)
	if m.List.SelectByKey(key) {
		return
	}
	switch item.Variant() {
	case domain.VariantSaved:
		m.switchTab(TabFoods)
	case domain.VariantComposed:
		m.switchTab(TabRecipes)
	}
	if !m.List.SelectByKey(key) {
		// Hidden by the active query; clear it and retry.
		m.LibrarySvc.SetQuery("")
		m.searchInput.SetValue("")
		m.refreshList()
		m.List.SelectByKey(key)
	}
}

func (m *Model) switchTab(tab LibraryTab) {
	m.Tab = tab
	m.List.SetTitle(tab.String())
	m.List.ClearFilter()
	m.refreshList()
	m.layout()
}

// refreshList re-reads the active derived view from the service.
func (m *Model) refreshList() {
	switch m.Tab {
	case TabFoods:
		m.List.SetItems(m.LibrarySvc.Saved())
	case TabRecipes:
		m.List.SetItems(m.LibrarySvc.Composed())
	default:
		m.List.SetItems(m.LibrarySvc.All())
	}
}

func (m *Model) layout() {
	if !m.Ready {
		return
	}
	contentHeight := m.height - chromeHeight
	m.List.SetSize(m.width, contentHeight)
	m.List.SetFocused(m.State == StateBrowsing || m.State == StateSearching)
	m.QuickFind.SetSize(m.width, m.height)
	m.GoalsView.SetSize(m.width, contentHeight)
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

// View renders the application.
func (m *Model) View() string {
	if !m.Ready {
		return "starting..."
	}

	if m.QuickFind.IsVisible() {
		return m.QuickFind.View()
	}

	var body string
	switch m.State {
	case StateGoals:
		body = m.GoalsView.View()
	case StateHelp:
		body = m.helpView()
	default:
		body = m.List.View()
	}

	sections := []string{m.tabBar(), body, m.footer()}

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.SortModal.IsVisible() {
		return overlayCenter(view, m.SortModal.View(), m.width, m.height)
	}
	if m.ConfirmModal.IsVisible() {
		return overlayCenter(view, m.ConfirmModal.View(), m.width, m.height)
	}
	return view
}

func (m *Model) tabBar() string {
	var tabs []string
	for _, t := range []LibraryTab{TabAll, TabFoods, TabRecipes} {
		if t == m.Tab {
			tabs = append(tabs, styles.TabActiveStyle.Render(t.String()))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(t.String()))
		}
	}

	bar := strings.Join(tabs, " ")
	state := m.LibrarySvc.Snapshot()
	bar += "   " + styles.DimStyle.Render("sort: "+state.Sort.String())
	if state.Query != "" && m.State != StateSearching {
		bar += "  " + styles.AccentStyle.Render("/"+state.Query)
	}
	return bar
}

func (m *Model) footer() string {
	if m.State == StateSearching {
		return m.searchInput.View()
	}
	if m.status != "" {
		if m.statusErr {
			return styles.ErrorStyle.Render(m.status)
		}
		return styles.SuccessStyle.Render(m.status)
	}
	return styles.DimStyle.Render("j/k move · / search · f filter · s sort · d delete · r refresh · ? help")
}

func (m *Model) helpView() string {
	rows := []string{
		"j/k, arrows    move",
		"g/G            top / bottom",
		"1/2/3, tab     switch view",
		"/              search by name",
		"f              filter current list",
		"ctrl+f         quick find (typo tolerant)",
		"s              sort (usage, name, recency)",
		"d, x           delete selected item",
		"r              refresh from server",
		"ctrl+g         nutrition goals",
		"q              quit",
	}

	content := styles.TitleStyle.Render("Keys") + "\n\n" + strings.Join(rows, "\n")

	frameW, frameH := styles.ActiveBorder.GetFrameSize()
	return styles.ActiveBorder.
		Width(m.width - frameW).
		Height(m.height - chromeHeight - frameH).
		Render(lipgloss.NewStyle().Padding(0, 1).Render(content))
}

// overlayCenter places a modal over the app view.
func overlayCenter(base, modal string, width, height int) string {
	_ = base
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
