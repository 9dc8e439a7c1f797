package ui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/i18n"
	"MemoryMorse/memory"
)

// statusReset is how long the success message stays up.
const statusReset = 3 * time.Second

var sentimentOptions = []string{
	string(memory.Positive),
	string(memory.Neutral),
	string(memory.Negative),
}

// MemoryForm is the "Share Your Memory" panel.
type MemoryForm struct {
	a App

	entry     *widget.Entry
	counter   *widget.Label
	progress  *widget.ProgressBar
	preview   *canvas.Text
	sentiment *widget.Select
	status    *canvas.Text
	submit    *widget.Button
	clear     *widget.Button
	content   fyne.CanvasObject
}

// NewMemoryForm builds the form around a.Form().
func NewMemoryForm(a App) *MemoryForm {
	f := &MemoryForm{a: a}

	f.entry = widget.NewMultiLineEntry()
	f.entry.SetPlaceHolder(i18n.T("Share a memory, a thought, or a moment..."))
	f.entry.Wrapping = fyne.TextWrapWord
	f.entry.SetMinRowsVisible(3)

	f.counter = widget.NewLabel("")
	f.progress = widget.NewProgressBar()
	f.progress.Max = memory.MaxLength
	f.progress.TextFormatter = func() string { return "" }

	f.preview = canvas.NewText("", ColorMorse)
	f.preview.TextStyle.Monospace = true
	f.preview.TextSize = 12

	f.sentiment = widget.NewSelect(sentimentOptions, nil)
	f.sentiment.SetSelected(string(memory.Neutral))

	f.status = canvas.NewText("", ColorGood)

	f.clear = widget.NewButton(i18n.T("Clear"), func() { f.entry.SetText("") })
	f.submit = widget.NewButton(i18n.T("Submit Memory"), f.Submit)
	f.submit.Importance = widget.HighImportance

	f.entry.OnChanged = f.update

	f.content = container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Share Your Memory"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		f.entry,
		container.NewBorder(nil, nil, nil, f.counter, f.progress),
		f.preview,
		container.NewHBox(widget.NewLabel(i18n.T("Sentiment")), f.sentiment),
		f.status,
		container.NewHBox(layout.NewSpacer(), f.clear, f.submit),
	)

	f.update("")
	return f
}

func (f *MemoryForm) update(text string) {
	form := f.a.Form()
	remaining := form.Remaining(text)
	f.counter.SetText(fmt.Sprintf(i18n.T("%d characters remaining"), remaining))
	f.progress.SetValue(float64(memory.MaxLength - remaining))

	f.preview.Text = form.Preview(text)
	f.preview.Refresh()

	if err := form.Validate(text); err != nil {
		f.submit.Disable()
		if errors.Is(err, memory.ErrMemoryTooLong) {
			f.setStatus(i18n.T("Memory is too long"), ColorBad)
		}
		return
	}
	f.submit.Enable()
	if f.status.Color == ColorBad {
		f.setStatus("", ColorGood)
	}
}

// Submit hands the entry to the application.
func (f *MemoryForm) Submit() {
	sentiment := memory.ParseSentiment(f.sentiment.Selected)
	_, err := f.a.SubmitMemory(f.entry.Text, sentiment)
	switch {
	case errors.Is(err, memory.ErrEmptyMemory):
		f.setStatus(i18n.T("Please enter a memory"), ColorBad)
		return
	case errors.Is(err, memory.ErrMemoryTooLong):
		f.setStatus(i18n.T("Memory is too long"), ColorBad)
		return
	case err != nil:
		f.setStatus(err.Error(), ColorBad)
		return
	}

	f.entry.SetText("")
	f.sentiment.SetSelected(string(memory.Neutral))
	f.setStatus(i18n.T("Memory successfully added to the lighthouse!"), ColorGood)
	time.AfterFunc(statusReset, func() {
		fyne.Do(func() { f.setStatus("", ColorGood) })
	})
}

func (f *MemoryForm) setStatus(msg string, col color.Color) {
	f.status.Text = msg
	f.status.Color = col
	f.status.Refresh()
}

// Status returns the message under the form.
func (f *MemoryForm) Status() string { return f.status.Text }

// Content returns the form layout.
func (f *MemoryForm) Content() fyne.CanvasObject { return f.content }
