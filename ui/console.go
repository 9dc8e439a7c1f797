package ui

import (
	"errors"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/i18n"
	"MemoryMorse/memory"
	"MemoryMorse/morse"
)

// referenceSize is how many table entries the console shows as a cheat sheet.
const referenceSize = 24

// DecodeConsole lets the user type their reading of the flashed memory.
type DecodeConsole struct {
	a App

	morseText *canvas.Text
	entry     *widget.Entry
	feedback  *canvas.Text
	submit    *widget.Button
	content   fyne.CanvasObject
}

// NewDecodeConsole builds the console and follows the memory on the
// lighthouse.
func NewDecodeConsole(a App) *DecodeConsole {
	c := &DecodeConsole{a: a}

	c.morseText = canvas.NewText("", ColorMorse)
	c.morseText.TextStyle.Monospace = true
	c.morseText.TextSize = 18

	c.entry = widget.NewMultiLineEntry()
	c.entry.SetPlaceHolder(i18n.T("Type your translation here..."))
	c.entry.SetMinRowsVisible(3)

	c.feedback = canvas.NewText("", ColorGood)
	c.submit = widget.NewButton(i18n.T("Submit Translation"), c.Submit)

	c.content = container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Decode Console"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		c.morseText,
		c.entry,
		c.feedback,
		c.submit,
		widget.NewSeparator(),
		buildReference(),
	)

	c.setMemory(a.Console().Expected())
	a.OnMemoryChanged(func(m memory.Memory) {
		fyne.Do(func() { c.setMemory(m) })
	})
	return c
}

func buildReference() fyne.CanvasObject {
	grid := container.NewGridWithColumns(4)
	for i, e := range morse.Reference() {
		if i == referenceSize {
			break
		}
		t := canvas.NewText(strings.ToUpper(string(e.Char))+" "+e.Token, ColorMorse)
		t.TextStyle.Monospace = true
		t.TextSize = 11
		grid.Add(t)
	}
	return grid
}

func (c *DecodeConsole) setMemory(m memory.Memory) {
	c.morseText.Text = m.Morse
	c.morseText.Refresh()
}

// Submit checks the entry against the flashed memory.
func (c *DecodeConsole) Submit() {
	verdict, err := c.a.SubmitDecoding(c.entry.Text)
	switch {
	case errors.Is(err, memory.ErrEmptyTranslation):
		c.setFeedback(i18n.T("Please enter your decoded message"), ColorBad)
	case err != nil:
		c.setFeedback(err.Error(), ColorBad)
	case verdict.Correct:
		c.setFeedback(i18n.T("Correct translation! Memory added to your journal."), ColorGood)
		c.entry.SetText("")
	default:
		c.setFeedback(i18n.T("Translation incorrect. Try again."), ColorBad)
	}
}

func (c *DecodeConsole) setFeedback(msg string, col color.Color) {
	c.feedback.Text = msg
	c.feedback.Color = col
	c.feedback.Refresh()
}

// Feedback returns the last verdict message.
func (c *DecodeConsole) Feedback() string { return c.feedback.Text }

// Content returns the console layout.
func (c *DecodeConsole) Content() fyne.CanvasObject { return c.content }
