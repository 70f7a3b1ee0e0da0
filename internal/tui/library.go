package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarlow/ironlog/internal/store"
)

type libraryModel struct {
	store  *store.Store
	width  int
	height int

	exercises []store.Exercise
	cursor    int
	category  store.Category // empty = all categories

	filtering bool
	filter    textinput.Model

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formName     *string
	formCategory *string

	editingID int64
}

func newLibraryModel(s *store.Store) libraryModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 40

	name, cat := "", string(store.CategoryChest)
	return libraryModel{
		store:        s,
		filter:       ti,
		formName:     &name,
		formCategory: &cat,
	}
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

type libraryDataMsg struct {
	exercises []store.Exercise
}

func (l libraryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		exercises, _ := l.store.ListExercises(l.category)
		return libraryDataMsg{exercises: exercises}
	}
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case libraryDataMsg:
		l.exercises = msg.exercises
		l.clampCursor()
		return l, nil

	case tea.KeyMsg:
		if l.filtering {
			return l.updateFilter(msg)
		}
		return l.updateList(msg)
	}
	return l, nil
}

func (l *libraryModel) clampCursor() {
	n := len(l.visible())
	if l.cursor >= n {
		l.cursor = max(0, n-1)
	}
}

// visible applies the text filter on top of the category filter.
func (l libraryModel) visible() []store.Exercise {
	return filterExercises(l.exercises, l.filter.Value())
}

func (l libraryModel) updateList(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.visible())-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Left):
		l.category = prevCategory(l.category)
		l.cursor = 0
		return l, l.refresh()
	case key.Matches(msg, keys.Right):
		l.category = nextCategory(l.category)
		l.cursor = 0
		return l, l.refresh()
	case key.Matches(msg, keys.Filter):
		l.filtering = true
		l.filter.Focus()
		return l, textinput.Blink
	case key.Matches(msg, keys.New):
		return l.showNewForm()
	case key.Matches(msg, keys.Edit):
		if len(l.visible()) > 0 {
			return l.showEditForm()
		}
	case key.Matches(msg, keys.Delete):
		vis := l.visible()
		if len(vis) == 0 {
			return l, nil
		}
		e := vis[min(l.cursor, len(vis)-1)]
		if err := l.store.DeleteExercise(e.ID); err != nil {
			return l, errorStatus(err)
		}
		return l, tea.Batch(
			l.refresh(),
			func() tea.Msg {
				return statusMsg{text: "Removed " + e.Name + " (logged sets are kept)"}
			},
		)
	case key.Matches(msg, keys.Back):
		if l.filter.Value() != "" {
			l.filter.SetValue("")
			l.cursor = 0
		}
	}
	return l, nil
}

func (l libraryModel) updateFilter(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	// The filter input owns the letter keys while typing.
	switch msg.String() {
	case "esc":
		l.filtering = false
		l.filter.Blur()
		l.filter.SetValue("")
		l.cursor = 0
		return l, nil
	case "enter":
		l.filtering = false
		l.filter.Blur()
		return l, nil
	case "up":
		if l.cursor > 0 {
			l.cursor--
		}
		return l, nil
	case "down":
		if l.cursor < len(l.visible())-1 {
			l.cursor++
		}
		return l, nil
	}

	before := l.filter.Value()
	var cmd tea.Cmd
	l.filter, cmd = l.filter.Update(msg)
	if l.filter.Value() != before {
		l.cursor = 0
	}
	return l, cmd
}

// nextCategory cycles all -> chest -> ... -> other -> all.
func nextCategory(c store.Category) store.Category {
	if c == "" {
		return store.Categories[0]
	}
	for i, cat := range store.Categories {
		if cat == c {
			if i == len(store.Categories)-1 {
				return ""
			}
			return store.Categories[i+1]
		}
	}
	return ""
}

func prevCategory(c store.Category) store.Category {
	if c == "" {
		return store.Categories[len(store.Categories)-1]
	}
	for i, cat := range store.Categories {
		if cat == c {
			if i == 0 {
				return ""
			}
			return store.Categories[i-1]
		}
	}
	return ""
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.Categories))
	for i, c := range store.Categories {
		opts[i] = huh.NewOption(string(c), string(c))
	}
	return opts
}

func (l libraryModel) showNewForm() (libraryModel, tea.Cmd) {
	*l.formName = ""
	*l.formCategory = string(store.CategoryChest)
	l.formType = "new"

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise Name").Value(l.formName),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions()...).Value(l.formCategory),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) showEditForm() (libraryModel, tea.Cmd) {
	vis := l.visible()
	e := vis[min(l.cursor, len(vis)-1)]
	*l.formName = e.Name
	*l.formCategory = string(e.Category)
	l.formType = "edit"
	l.editingID = e.ID

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise Name").Value(l.formName),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions()...).Value(l.formCategory),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) updateForm(msg tea.Msg) (libraryModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		switch l.formType {
		case "new":
			if *l.formName != "" {
				if _, err := l.store.CreateExercise(*l.formName, store.Category(*l.formCategory), true); err != nil {
					return l, errorStatus(err)
				}
			}
			return l, l.refresh()
		case "edit":
			if *l.formName != "" {
				if err := l.store.UpdateExercise(l.editingID, *l.formName, store.Category(*l.formCategory)); err != nil {
					return l, errorStatus(err)
				}
			}
			return l, l.refresh()
		}
	}

	return l, cmd
}

func (l libraryModel) view() string {
	cw := l.width - 4

	if l.formActive && l.form != nil {
		title := titleStyle.Render("New Exercise")
		if l.formType == "edit" {
			title = titleStyle.Render("Edit Exercise")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", l.form.View())
		return panelStyle.Width(cw).Render(content)
	}

	catLabel := "all"
	if l.category != "" {
		catLabel = string(l.category)
	}
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Library"), mutedStyle.Render("category: "+catLabel))

	var rows []string
	rows = append(rows, header)
	if l.filtering || l.filter.Value() != "" {
		rows = append(rows, l.filter.View())
	}
	rows = append(rows, "")

	vis := l.visible()
	if len(vis) == 0 {
		rows = append(rows, mutedStyle.Render("  No exercises here. Press n to add one."))
	} else {
		maxRows := max(5, l.height-10)
		start, end := windowBounds(len(vis), l.cursor, maxRows)
		for i := start; i < end; i++ {
			e := vis[i]
			cursor := "  "
			style := normalItemStyle
			if i == l.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			marker := ""
			if e.Custom {
				marker = mutedStyle.Render("  custom")
			}
			rows = append(rows, style.Render(fmt.Sprintf("%s%s %-28s %-10s", cursor, categoryDot(e.Category), e.Name, e.Category))+marker)
		}
		if start > 0 || end < len(vis) {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d of %d", end-start, len(vis))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  /: filter  ←/→: category"))

	return panelStyle.Width(cw).Render(strings.Join(rows, "\n"))
}
