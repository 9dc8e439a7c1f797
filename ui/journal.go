package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/i18n"
	"MemoryMorse/lighthouse"
	"MemoryMorse/memory"
)

var filterOptions = []string{
	string(memory.FilterAll),
	string(memory.FilterFavorites),
	string(memory.FilterPositive),
	string(memory.FilterNeutral),
	string(memory.FilterNegative),
}

const (
	starOn  = "★"
	starOff = "☆"
)

var sortOptions = []string{
	string(memory.SortByDate),
	string(memory.SortByTheme),
}

// JournalView lists decoded memories with search, filter and sort.
type JournalView struct {
	a      App
	window fyne.Window

	query   memory.Query
	items   []memory.Memory
	search  *widget.Entry
	sort    *widget.Select
	filter  *widget.RadioGroup
	list    *widget.List
	empty   *widget.Label
	content fyne.CanvasObject
}

// NewJournalView builds the journal panel. Export dialogs are parented to w.
func NewJournalView(a App, w fyne.Window) *JournalView {
	v := &JournalView{
		a:      a,
		window: w,
		query:  memory.Query{Filter: memory.FilterAll, Sort: memory.SortByDate},
	}

	v.search = widget.NewEntry()
	v.search.SetPlaceHolder(i18n.T("Search memories..."))
	v.search.OnChanged = func(s string) {
		v.query.Search = s
		v.Reload()
	}

	v.sort = widget.NewSelect(sortOptions, func(s string) {
		v.query.Sort = memory.SortOrder(s)
		v.Reload()
	})
	v.sort.SetSelected(string(memory.SortByDate))

	v.filter = widget.NewRadioGroup(filterOptions, func(s string) {
		if s == "" {
			s = string(memory.FilterAll)
		}
		v.query.Filter = memory.Filter(s)
		v.Reload()
	})
	v.filter.Horizontal = true
	v.filter.SetSelected(string(memory.FilterAll))

	v.list = widget.NewList(
		func() int { return len(v.items) },
		v.createCard,
		v.updateCard,
	)
	v.empty = widget.NewLabel(i18n.T("No memories found"))

	export := widget.NewButtonWithIcon(i18n.T("Export Journal"), theme.DocumentSaveIcon(), v.export)

	v.content = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle(i18n.T("Memory Journal"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewBorder(nil, nil, nil, v.sort, v.search),
			v.filter,
		),
		export, nil, nil,
		container.NewStack(v.empty, v.list),
	)

	a.OnJournalChanged(func() { fyne.Do(v.Reload) })
	v.Reload()
	return v
}

// Reload re-runs the current query.
func (v *JournalView) Reload() {
	v.items = v.a.Journal().Query(v.query)
	if v.list == nil {
		return
	}
	if len(v.items) == 0 {
		v.empty.Show()
	} else {
		v.empty.Hide()
	}
	v.list.Refresh()
}

// Items returns the memories currently listed.
func (v *JournalView) Items() []memory.Memory { return v.items }

func (v *JournalView) createCard() fyne.CanvasObject {
	star := NewTappableContainer(widget.NewLabel(starOff), nil, nil)
	text := widget.NewLabel("")
	text.Wrapping = fyne.TextWrapWord
	code := canvas.NewText("", ColorMorse)
	code.TextStyle.Monospace = true
	code.TextSize = 11
	meta := canvas.NewText("", ColorBorder)
	meta.TextSize = 10
	return container.NewBorder(nil, container.NewVBox(code, meta), nil, star, text)
}

func (v *JournalView) updateCard(id widget.ListItemID, o fyne.CanvasObject) {
	if id >= len(v.items) {
		return
	}
	m := v.items[id]
	card := o.(*fyne.Container)

	// Border layout keeps the center object first, then the edges in order.
	text := card.Objects[0].(*widget.Label)
	bottom := card.Objects[1].(*fyne.Container)
	star := card.Objects[2].(*TappableContainer)

	text.SetText(m.Text)
	code := bottom.Objects[0].(*canvas.Text)
	code.Text = truncate(m.Morse, 48)
	code.Refresh()
	meta := bottom.Objects[1].(*canvas.Text)
	meta.Text = m.Date.Format("Jan 2, 2006") + "  " + string(m.Sentiment) + "  " + m.Theme
	meta.Color = lighthouse.BeamColor(m.Sentiment)
	meta.Refresh()

	mark := star.Content.(*widget.Label)
	if m.Favorite {
		mark.SetText(starOn)
	} else {
		mark.SetText(starOff)
	}
	star.OnTappedPrimary = func() {
		if _, err := v.a.ToggleFavorite(m.ID); err != nil {
			log.Printf("Failed to toggle favorite %s: %v", m.ID, err)
		}
		v.Reload()
	}
}

func (v *JournalView) export() {
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := v.a.ExportJournal(w); err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		log.Printf("Journal exported to %s", w.URI())
	}, v.window)
}

// Content returns the panel layout.
func (v *JournalView) Content() fyne.CanvasObject { return v.content }
