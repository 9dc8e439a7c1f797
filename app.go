// Package main contains the application wiring and the AppManager which
// coordinates the lighthouse, the memory playlist, the journal and the UI.
//
// Maintenance notes:
//   - Concurrency model: every change to what the lighthouse shows or whether
//     it flashes goes through the single command-loop goroutine (see
//     `commandLoop`). The flasher's own timer goroutine only reports back
//     through OnFlashComplete, which enqueues a CmdNext instead of touching
//     the playlist directly.
//   - `cmdCh` is buffered. EnqueueCommand gives up after a short timeout and
//     logs the dropped command so the UI never blocks on a busy loop.
//   - Journal and playlist are safe for concurrent use; listener slices are
//     guarded by `listenersMu` and copied before they are called.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/clock"
	"MemoryMorse/config"
	"MemoryMorse/control"
	"MemoryMorse/flasher"
	"MemoryMorse/i18n"
	"MemoryMorse/lighthouse"
	"MemoryMorse/memory"
)

const (
	cmdBuffer      = 256
	enqueueTimeout = 150 * time.Millisecond
	tickInterval   = time.Second
)

// tonePlayer is the audio side of the lighthouse.
type tonePlayer interface {
	lighthouse.TonePlayer
	SetVolume(volume int)
}

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	content    fs.ReadFileFS
	cfg        *config.Config
	clock      clock.Clock
	tone       tonePlayer

	lighthouse *lighthouse.Lighthouse
	playlist   *memory.Playlist
	journal    *memory.Journal
	console    *memory.Console
	form       *memory.Form

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc
	loopDone  chan struct{}

	listenersMu      sync.Mutex
	memoryListeners  []func(memory.Memory)
	journalListeners []func()
}

// NewAppManager creates the application manager and starts its command
// loop. tone may be nil when audio is unavailable.
func NewAppManager(content fs.ReadFileFS, cfg *config.Config, c clock.Clock, tone tonePlayer) *AppManager {
	a := &AppManager{
		content:  content,
		cfg:      cfg,
		clock:    c,
		tone:     tone,
		playlist: memory.NewPlaylist(),
		journal:  memory.NewJournal(loadSeed(content, cfg.Playlist.Seed)...),
		console:  &memory.Console{},
		form:     &memory.Form{},
		loopDone: make(chan struct{}),
	}
	log.Printf("Loaded %d journal memories.", a.journal.Len())

	a.console.OnSubmitDecoding = func(text string) {
		log.Printf("Decode attempt for %s: %q", a.console.Expected().ID, text)
	}
	a.form.OnSubmit = func(s memory.Submission) {
		log.Printf("Memory submitted: %d characters, %q", len(s.Text), s.Morse)
	}

	var opts []lighthouse.Option
	if tone != nil {
		opts = append(opts, lighthouse.WithTone(tone))
	}
	a.lighthouse = lighthouse.New(c, cfg, opts...)
	a.lighthouse.OnFlashComplete(a.flashComplete)
	a.console.SetExpected(a.lighthouse.Current())

	a.cmdCh = make(chan control.Command, cmdBuffer)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

func loadSeed(content fs.ReadFileFS, name string) []memory.Memory {
	if name == "" {
		return nil
	}
	data, err := content.ReadFile(name)
	if err != nil {
		log.Printf("Failed to read memory seed %s: %v", name, err)
		return nil
	}
	seed, err := memory.LoadSeed(data)
	if err != nil {
		log.Printf("Failed to load memory seed %s: %v", name, err)
		return nil
	}
	return seed
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-time.After(enqueueTimeout):
		log.Printf("EnqueueCommand timeout: dropping %s command", cmd.Type)
	}
}

func (a *AppManager) commandLoop() {
	defer close(a.loopDone)
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			switch cmd.Type {
			case control.CmdShow:
				a.show(cmd.Memory)
			case control.CmdStart:
				a.lighthouse.SetFlashing(true)
			case control.CmdStop:
				a.lighthouse.SetFlashing(false)
			case control.CmdNext:
				a.show(a.playlist.Next())
			case control.CmdEnqueue:
				a.playlist.Push(cmd.Memory)
				a.show(a.playlist.Current())
			case control.CmdAudio:
				a.lighthouse.SetAudio(cmd.Enabled)
			default:
				log.Printf("Unknown command %d", cmd.Type)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- nil:
				default:
				}
			}
		}
	}
}

// show puts m on the lighthouse and points the console at it. Only the
// command loop calls it.
func (a *AppManager) show(m memory.Memory) {
	if m.ID == a.lighthouse.Current().ID {
		return
	}
	a.lighthouse.Show(m)
	a.console.SetExpected(m)

	a.listenersMu.Lock()
	listeners := append(([]func(memory.Memory))(nil), a.memoryListeners...)
	a.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(m)
	}
}

func (a *AppManager) flashComplete() {
	if !a.cfg.Playlist.AutoAdvance || a.playlist.Len() < 2 {
		return
	}
	// Runs on the flasher's timer goroutine; never block it on a full queue.
	select {
	case a.cmdCh <- control.Command{Type: control.CmdNext}:
	default:
		log.Printf("Command queue full: skipping auto-advance")
	}
}

func (a *AppManager) journalChanged() {
	a.listenersMu.Lock()
	listeners := append(([]func())(nil), a.journalListeners...)
	a.listenersMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Config returns the loaded configuration.
func (a *AppManager) Config() *config.Config { return a.cfg }

// Lighthouse returns the lighthouse host.
func (a *AppManager) Lighthouse() *lighthouse.Lighthouse { return a.lighthouse }

// Journal returns the decoded memories.
func (a *AppManager) Journal() *memory.Journal { return a.journal }

// Form returns the memory form rules.
func (a *AppManager) Form() *memory.Form { return a.form }

// Console returns the decode console rules.
func (a *AppManager) Console() *memory.Console { return a.console }

// OnMemoryChanged registers fn to run whenever a new memory goes on air.
func (a *AppManager) OnMemoryChanged(fn func(memory.Memory)) {
	a.listenersMu.Lock()
	a.memoryListeners = append(a.memoryListeners, fn)
	a.listenersMu.Unlock()
}

// OnJournalChanged registers fn to run after the journal is modified.
func (a *AppManager) OnJournalChanged(fn func()) {
	a.listenersMu.Lock()
	a.journalListeners = append(a.journalListeners, fn)
	a.listenersMu.Unlock()
}

// SubmitDecoding checks text against the memory on air. A correct reading
// moves the memory into the journal and out of the rotation.
func (a *AppManager) SubmitDecoding(text string) (memory.Verdict, error) {
	verdict, err := a.console.Submit(text)
	if err != nil || !verdict.Correct {
		return verdict, err
	}

	m := verdict.Memory
	m.Date = a.clock.Now()
	a.journal.Add(m)
	a.journalChanged()

	if a.playlist.Remove(m.ID) {
		a.EnqueueCommand(control.Command{Type: control.CmdShow, Memory: a.playlist.Current()})
	}
	return verdict, nil
}

// SubmitMemory validates text and puts the new memory on air.
func (a *AppManager) SubmitMemory(text string, sentiment memory.Sentiment) (memory.Memory, error) {
	sub, err := a.form.Submit(text)
	if err != nil {
		return memory.Memory{}, err
	}
	m := memory.New(sub.Text, sentiment, a.clock.Now())
	a.EnqueueCommand(control.Command{Type: control.CmdEnqueue, Memory: m})
	return m, nil
}

// ToggleFavorite flips the favorite mark of a journal memory.
func (a *AppManager) ToggleFavorite(id string) (bool, error) {
	fav, err := a.journal.ToggleFavorite(id)
	if err != nil {
		return false, err
	}
	a.journalChanged()
	return fav, nil
}

// ExportJournal writes the journal as YAML.
func (a *AppManager) ExportJournal(w io.Writer) error {
	if err := a.journal.Export(w); err != nil {
		return fmt.Errorf("export journal: %w", err)
	}
	return nil
}

// SetVolume changes the tone volume, 0-100.
func (a *AppManager) SetVolume(volume int) {
	a.cfg.Audio.Volume = volume
	if a.tone != nil {
		a.tone.SetVolume(volume)
	}
}

// ShowInfoDialog shows a dialog with the given title and content. JSON
// files hold one text per language.
func (a *AppManager) ShowInfoDialog(title, contentFile string, minSize fyne.Size) {
	contentText, err := a.infoText(contentFile)
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	text := widget.NewLabel(contentText)
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

func (a *AppManager) infoText(contentFile string) (string, error) {
	bytes, err := a.content.ReadFile(contentFile)
	if err != nil {
		return "", err
	}
	if path.Ext(contentFile) != ".json" {
		return string(bytes), nil
	}

	var dialogues map[string]string
	if err := json.Unmarshal(bytes, &dialogues); err != nil {
		return "", fmt.Errorf("parse %s: %w", contentFile, err)
	}
	if text, ok := dialogues[i18n.GetLang()]; ok {
		return text, nil
	}
	return dialogues["en"], nil
}

// tick logs a heartbeat of the lighthouse state until ctx is cancelled.
func (a *AppManager) tick(ctx context.Context) {
	ticker := a.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	var lastCycles int
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := a.lighthouse.Snapshot()
			if snap.Cycles != lastCycles {
				lastCycles = snap.Cycles
				log.Printf("Lighthouse %s: %s", a.lighthouse.Current().ID, flasher.FormatProgress(snap))
			}
		}
	}
}

// Shutdown stops the command loop and the lighthouse. It is safe to call
// more than once.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
		<-a.loopDone
	}
	a.lighthouse.Close()
}
