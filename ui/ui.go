package ui

import (
	"image/color"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/config"
	"MemoryMorse/control"
	"MemoryMorse/lighthouse"
	"MemoryMorse/memory"
)

// App is what the widgets need from the application.
type App interface {
	Config() *config.Config
	Lighthouse() *lighthouse.Lighthouse
	Journal() *memory.Journal
	Form() *memory.Form
	Console() *memory.Console
	EnqueueCommand(cmd control.Command)
	SubmitDecoding(text string) (memory.Verdict, error)
	SubmitMemory(text string, sentiment memory.Sentiment) (memory.Memory, error)
	ToggleFavorite(id string) (bool, error)
	ExportJournal(w io.Writer) error
	SetVolume(volume int)
	ShowInfoDialog(title, contentFile string, minSize fyne.Size)
	OnMemoryChanged(fn func(memory.Memory))
	OnJournalChanged(fn func())
}

// TappableContainer makes any canvas object respond to taps.
type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(t.Content, layout.NewSpacer()))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}

func withAlpha(c color.Color, alpha uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
