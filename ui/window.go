package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/control"
	"MemoryMorse/i18n"
)

const (
	windowWidth  = 960
	windowHeight = 720
	replyTimeout = 200 * time.Millisecond
)

var panelSize = fyne.NewSize(520, 460)

// send enqueues cmd and waits briefly for the command loop to confirm.
func send(a App, cmd control.Command) {
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case <-reply:
	case <-time.After(replyTimeout):
	}
}

// Settings holds the audio, volume and flashing controls.
type Settings struct {
	app      App
	audio    *widget.Check
	volume   *widget.Slider
	flashing *widget.Check
	next     *widget.Button
}

// BuildSettings creates the settings bar from the current configuration.
func BuildSettings(a App) *Settings {
	cfg := a.Config()
	s := &Settings{app: a}

	s.audio = widget.NewCheck(i18n.T("Morse Audio"), func(on bool) {
		send(a, control.Command{Type: control.CmdAudio, Enabled: on})
	})
	s.audio.Checked = cfg.Audio.Enabled

	s.volume = widget.NewSlider(0, 100)
	s.volume.Step = 1
	s.volume.Value = float64(cfg.Audio.Volume)
	s.volume.OnChangeEnded = func(v float64) { a.SetVolume(int(v)) }

	s.flashing = widget.NewCheck(i18n.T("Flashing"), s.setFlashing)
	s.flashing.Checked = a.Lighthouse().Flashing()

	s.next = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() {
		send(a, control.Command{Type: control.CmdNext})
	})
	return s
}

func (s *Settings) setFlashing(on bool) {
	if on {
		send(s.app, control.Command{Type: control.CmdStart})
	} else {
		send(s.app, control.Command{Type: control.CmdStop})
	}
}

// ToggleFlashing flips the lighthouse between flashing and dark, keeping the
// Flashing check in step with it.
func (s *Settings) ToggleFlashing() {
	on := !s.app.Lighthouse().Flashing()
	if s.flashing.Checked == on {
		// SetChecked would not fire OnChanged.
		s.setFlashing(on)
		return
	}
	s.flashing.SetChecked(on)
}

// Content returns the settings bar.
func (s *Settings) Content() fyne.CanvasObject {
	return container.NewHBox(
		s.audio,
		widget.NewLabel(i18n.T("Volume")),
		container.NewGridWrap(fyne.NewSize(120, s.volume.MinSize().Height), s.volume),
		s.flashing,
		s.next,
	)
}

// BuildNav returns the buttons opening the three panels.
func BuildNav(a App, w fyne.Window) fyne.CanvasObject {
	console := NewDecodeConsole(a)
	form := NewMemoryForm(a)
	journal := NewJournalView(a, w)

	show := func(title string, content fyne.CanvasObject) func() {
		return func() {
			scroll := container.NewVScroll(content)
			scroll.SetMinSize(panelSize)
			dialog.ShowCustom(title, i18n.T("Close"), scroll, w)
		}
	}

	return container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton(i18n.T("Decode Memory"), show(i18n.T("Decode Console"), console.Content())),
		widget.NewButton(i18n.T("Create Memory"), show(i18n.T("Share Your Memory"), form.Content())),
		widget.NewButton(i18n.T("Memory Journal"), show(i18n.T("Memory Journal"), journal.Content())),
		layout.NewSpacer(),
	)
}

// CreateMainWindow lays out the lighthouse scene with the navigation and
// settings bars.
func CreateMainWindow(a App, fyneApp fyne.App) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "Memory Morse"
	}
	w := fyneApp.NewWindow(title)

	scene := NewLighthouseWidget(a.Lighthouse())

	ambient := canvas.NewText(i18n.T("Listen to the lighthouse. Each flash carries a memory waiting to be discovered..."), ColorTower)
	ambient.Alignment = fyne.TextAlignCenter
	ambient.TextStyle.Italic = true

	helpButton := NewTappableContainer(widget.NewIcon(theme.QuestionIcon()), func() {
		a.ShowInfoDialog(i18n.T("Help"), "assets/help.txt", fyne.NewSize(500, 400))
	}, nil)
	aboutButton := NewTappableContainer(widget.NewIcon(theme.InfoIcon()), func() {
		a.ShowInfoDialog(i18n.T("About Memory Morse"), "assets/about.json", fyne.NewSize(400, 200))
	}, nil)

	settings := BuildSettings(a)
	footer := container.NewBorder(nil, nil,
		container.NewHBox(helpButton, aboutButton), nil,
		container.NewCenter(settings.Content()),
	)

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case ' ':
			settings.ToggleFlashing()
		case 'n', 'N':
			send(a, control.Command{Type: control.CmdNext})
		}
	})

	w.SetContent(container.NewBorder(
		container.NewVBox(BuildNav(a, w), ambient),
		footer, nil, nil,
		scene,
	))
	w.Resize(fyne.NewSize(windowWidth, windowHeight))
	return w
}
