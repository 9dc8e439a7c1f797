package main

import (
	"bytes"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gopxl/beep/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"MemoryMorse/clock"
	"MemoryMorse/config"
	"MemoryMorse/control"
	"MemoryMorse/i18n"
	"MemoryMorse/memory"
	"MemoryMorse/morse"
)

var epoch = time.Date(2023, 9, 1, 20, 0, 0, 0, time.UTC)

const testSeed = `[
  // two decoded memories
  {"id": "1", "text": "turquoise bay", "date": "2023-05-15T00:00:00Z", "sentiment": "positive", "theme": "Nostalgia", "favorite": true},
  {"id": "2", "text": "fog", "date": "2023-07-22T00:00:00Z", "sentiment": "negative", "theme": "Solitude"},
]`

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"assets/memories.jsonc": {Data: []byte(testSeed)},
		"assets/help.txt":       {Data: []byte("dots and dashes")},
		"assets/about.json":     {Data: []byte(`{"en": "a lighthouse", "pt": "um farol"}`)},
	}
}

type recordingTone struct {
	mu     sync.Mutex
	on     []bool
	volume int
}

func (r *recordingTone) SetTone(on bool) {
	r.mu.Lock()
	r.on = append(r.on, on)
	r.mu.Unlock()
}

func (r *recordingTone) SetVolume(v int) {
	r.mu.Lock()
	r.volume = v
	r.mu.Unlock()
}

func newTestApp(t *testing.T, tone tonePlayer) (*AppManager, *clock.FakeClock) {
	t.Helper()
	c := clock.Fake(epoch)
	a := NewAppManager(testContent(), config.Default(), c, tone)
	t.Cleanup(a.Shutdown)
	return a, c
}

// do runs cmd through the command loop and waits for it, and so for every
// command enqueued before it.
func do(t *testing.T, a *AppManager, cmd control.Command) {
	t.Helper()
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case err := <-reply:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("command loop did not reply")
	}
}

func TestNewAppManagerSeedsJournal(t *testing.T) {
	a, _ := newTestApp(t, nil)

	assert.Equal(t, 2, a.Journal().Len())
	assert.Equal(t, memory.Welcome, a.Lighthouse().Current())
	assert.Equal(t, memory.Welcome, a.Console().Expected())

	m, ok := a.Journal().Get("1")
	require.True(t, ok)
	assert.Equal(t, morse.Encode("turquoise bay"), m.Morse)
}

func TestMissingSeedLeavesJournalEmpty(t *testing.T) {
	cfg := config.Default()
	cfg.Playlist.Seed = "assets/nope.jsonc"
	a := NewAppManager(testContent(), cfg, clock.Fake(epoch), nil)
	defer a.Shutdown()

	assert.Zero(t, a.Journal().Len())
}

func TestSubmitMemoryGoesOnAir(t *testing.T) {
	a, _ := newTestApp(t, nil)
	var shown []string
	a.OnMemoryChanged(func(m memory.Memory) { shown = append(shown, m.Text) })

	m, err := a.SubmitMemory("sos", memory.Positive)
	require.NoError(t, err)
	assert.Equal(t, "... --- ...", m.Morse)
	assert.Equal(t, epoch, m.Date)
	do(t, a, control.Command{Type: control.CmdStop})

	assert.Equal(t, m, a.Lighthouse().Current())
	assert.Equal(t, m.ID, a.Console().Expected().ID)
	assert.Equal(t, []string{"sos"}, shown)
}

func TestSubmitMemoryRejectsInvalid(t *testing.T) {
	a, _ := newTestApp(t, nil)

	_, err := a.SubmitMemory(string(bytes.Repeat([]byte("a"), memory.MaxLength+1)), memory.Neutral)
	assert.ErrorIs(t, err, memory.ErrMemoryTooLong)
	_, err = a.SubmitMemory("   ", memory.Neutral)
	assert.ErrorIs(t, err, memory.ErrEmptyMemory)

	do(t, a, control.Command{Type: control.CmdStop})
	assert.Equal(t, memory.Welcome, a.Lighthouse().Current())
}

func TestCorrectDecodingMovesMemoryToJournal(t *testing.T) {
	a, _ := newTestApp(t, nil)
	journalChanges := 0
	a.OnJournalChanged(func() { journalChanges++ })

	sos, err := a.SubmitMemory("sos", memory.Neutral)
	require.NoError(t, err)
	hello, err := a.SubmitMemory("hello there", memory.Positive)
	require.NoError(t, err)
	do(t, a, control.Command{Type: control.CmdStop})
	require.Equal(t, hello.ID, a.Lighthouse().Current().ID)

	v, err := a.SubmitDecoding("hello where")
	require.NoError(t, err)
	assert.False(t, v.Correct)

	v, err = a.SubmitDecoding("HELLO  There")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, 1, journalChanges)

	got, ok := a.Journal().Get(hello.ID)
	require.True(t, ok)
	assert.Equal(t, epoch, got.Date)

	do(t, a, control.Command{Type: control.CmdStop})
	assert.Equal(t, sos.ID, a.Lighthouse().Current().ID, "decoded memory leaves the rotation")
}

func TestDecodingJournalsTheCheckedMemory(t *testing.T) {
	a, _ := newTestApp(t, nil)

	sos, err := a.SubmitMemory("sos", memory.Neutral)
	require.NoError(t, err)
	hello, err := a.SubmitMemory("hello there", memory.Positive)
	require.NoError(t, err)
	do(t, a, control.Command{Type: control.CmdStop})
	require.Equal(t, hello.ID, a.Console().Expected().ID)

	// Another memory goes on air while the attempt is being handled.
	a.Console().OnSubmitDecoding = func(string) { a.Console().SetExpected(sos) }

	v, err := a.SubmitDecoding("sos")
	require.NoError(t, err)
	require.True(t, v.Correct)
	assert.Equal(t, sos.ID, v.Memory.ID)

	_, ok := a.Journal().Get(sos.ID)
	assert.True(t, ok, "the memory that was checked is journaled")
	_, ok = a.Journal().Get(hello.ID)
	assert.False(t, ok)
}

func TestBlankDecodingIsRejected(t *testing.T) {
	a, _ := newTestApp(t, nil)

	_, err := a.SubmitDecoding("  ")
	assert.ErrorIs(t, err, memory.ErrEmptyTranslation)
	assert.Equal(t, 2, a.Journal().Len())
}

func TestAutoAdvanceAfterFullPass(t *testing.T) {
	a, c := newTestApp(t, nil)

	first, err := a.SubmitMemory("e", memory.Neutral)
	require.NoError(t, err)
	second, err := a.SubmitMemory("t", memory.Neutral)
	require.NoError(t, err)
	do(t, a, control.Command{Type: control.CmdStart})
	require.Equal(t, second.ID, a.Lighthouse().Current().ID)

	c.Advance(a.cfg.Timing.Cycle(morse.Parse(second.Morse)))

	require.Eventually(t, func() bool {
		return a.Lighthouse().Current().ID == first.ID
	}, time.Second, 5*time.Millisecond)
}

func TestUnflashableMemoriesDoNotSpin(t *testing.T) {
	a, c := newTestApp(t, nil)
	var mu sync.Mutex
	shown := 0
	a.OnMemoryChanged(func(memory.Memory) {
		mu.Lock()
		shown++
		mu.Unlock()
	})
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return shown
	}

	first, err := a.SubmitMemory("ñ", memory.Neutral)
	require.NoError(t, err)
	second, err := a.SubmitMemory("¿", memory.Neutral)
	require.NoError(t, err)
	require.Empty(t, first.Morse)
	require.Empty(t, second.Morse)
	do(t, a, control.Command{Type: control.CmdAudio})
	before := count()

	// Starting completes the empty pass at once and advances a single time.
	do(t, a, control.Command{Type: control.CmdStart})
	do(t, a, control.Command{Type: control.CmdAudio})
	assert.Equal(t, before+1, count())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before+1, count(), "no advance may happen without time passing")

	c.Advance(a.cfg.Timing.WordGap)
	do(t, a, control.Command{Type: control.CmdAudio})
	assert.Equal(t, before+2, count())
	assert.Equal(t, 2, a.Lighthouse().Snapshot().Cycles)
}

func TestSingleMemoryDoesNotAdvance(t *testing.T) {
	a, c := newTestApp(t, nil)
	do(t, a, control.Command{Type: control.CmdStart})

	c.Advance(a.cfg.Timing.Cycle(morse.Parse(memory.Welcome.Morse)))

	assert.Equal(t, memory.Welcome, a.Lighthouse().Current())
	assert.Equal(t, 1, a.Lighthouse().Snapshot().Cycles)
}

func TestStartStopCommands(t *testing.T) {
	a, _ := newTestApp(t, nil)

	do(t, a, control.Command{Type: control.CmdStart})
	assert.True(t, a.Lighthouse().Flashing())
	assert.True(t, a.Lighthouse().BeamOn())

	do(t, a, control.Command{Type: control.CmdStop})
	assert.False(t, a.Lighthouse().Flashing())
	assert.False(t, a.Lighthouse().BeamOn())
}

func TestAudioCommandGatesTone(t *testing.T) {
	tone := &recordingTone{}
	a, _ := newTestApp(t, tone)

	a.EnqueueCommand(control.Command{Type: control.CmdAudio, Enabled: true})
	do(t, a, control.Command{Type: control.CmdStart})

	tone.mu.Lock()
	defer tone.mu.Unlock()
	require.NotEmpty(t, tone.on)
	assert.True(t, tone.on[len(tone.on)-1], "first symbol of Welcome is lit")
}

func TestSetVolume(t *testing.T) {
	tone := &recordingTone{}
	a, _ := newTestApp(t, tone)

	a.SetVolume(80)
	assert.Equal(t, 80, tone.volume)
	assert.Equal(t, 80, a.Config().Audio.Volume)
}

func TestToggleFavoriteAndExport(t *testing.T) {
	a, _ := newTestApp(t, nil)

	fav, err := a.ToggleFavorite("2")
	require.NoError(t, err)
	assert.True(t, fav)
	_, err = a.ToggleFavorite("missing")
	assert.ErrorIs(t, err, memory.ErrUnknownMemory)

	var buf bytes.Buffer
	require.NoError(t, a.ExportJournal(&buf))
	var out []memory.Memory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.True(t, out[0].Favorite && out[1].Favorite)
}

func TestInfoText(t *testing.T) {
	a, _ := newTestApp(t, nil)
	prev := i18n.GetLang()
	t.Cleanup(func() { i18n.SetLang(prev) })

	text, err := a.infoText("assets/help.txt")
	require.NoError(t, err)
	assert.Equal(t, "dots and dashes", text)

	i18n.SetLang("pt")
	text, err = a.infoText("assets/about.json")
	require.NoError(t, err)
	assert.Equal(t, "um farol", text)

	i18n.SetLang("ru")
	text, err = a.infoText("assets/about.json")
	require.NoError(t, err)
	assert.Equal(t, "a lighthouse", text, "falls back to english")

	_, err = a.infoText("assets/missing.txt")
	assert.Error(t, err)
}

func TestEnqueueCommandDropsWhenFull(t *testing.T) {
	a := &AppManager{cmdCh: make(chan control.Command)}

	start := time.Now()
	a.EnqueueCommand(control.Command{Type: control.CmdNext})
	assert.GreaterOrEqual(t, time.Since(start), enqueueTimeout)
}

func TestShutdownIsIdempotent(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Shutdown()
	a.Shutdown()
	assert.False(t, a.Lighthouse().Flashing())
}

func TestFlags(t *testing.T) {
	opts, flagSet, err := parseFlags([]string{"--audio", "--volume", "80", "--lang", "es"})
	require.NoError(t, err)

	cfg := config.Default()
	require.NoError(t, applyFlags(cfg, opts, flagSet))
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.Equal(t, "es", cfg.Lang)

	opts, flagSet, err = parseFlags(nil)
	require.NoError(t, err)
	cfg = config.Default()
	require.NoError(t, applyFlags(cfg, opts, flagSet))
	assert.Equal(t, 50, cfg.Audio.Volume, "unset flags keep the configured value")

	opts, flagSet, err = parseFlags([]string{"--volume", "150"})
	require.NoError(t, err)
	assert.Error(t, applyFlags(config.Default(), opts, flagSet))
}

func TestToneVolumeCurve(t *testing.T) {
	tone := &beepTone{volume: &effects.Volume{Base: 2}}

	tone.setVolume(100)
	assert.Zero(t, tone.volume.Volume)
	assert.False(t, tone.volume.Silent)

	tone.setVolume(50)
	assert.InDelta(t, -2.0, tone.volume.Volume, 1e-9)

	tone.setVolume(0)
	assert.True(t, tone.volume.Silent)

	tone.setVolume(140)
	assert.Zero(t, tone.volume.Volume)
}
