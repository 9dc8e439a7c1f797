package ui

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"MemoryMorse/flasher"
	"MemoryMorse/lighthouse"
)

const (
	starCount    = 100
	stripeCount  = 5
	beamLength   = 800
	beamWidth    = 40
	lanternSize  = 64
	towerWidth   = 80
	towerHeight  = 320
	seaHeight    = 128
	overlayWidth = 220
)

type star struct {
	x, y, size float32
	alpha      uint8
}

// LighthouseWidget draws the tower, the night sky and the rotating beam.
// It only renders; the flasher and sweep drive it through callbacks.
type LighthouseWidget struct {
	widget.BaseWidget

	lh    *lighthouse.Lighthouse
	stars []star
}

// NewLighthouseWidget subscribes to lh's beam and sweep.
func NewLighthouseWidget(lh *lighthouse.Lighthouse) *LighthouseWidget {
	w := &LighthouseWidget{lh: lh, stars: make([]star, starCount)}
	for i := range w.stars {
		w.stars[i] = star{
			x:     rand.Float32(),
			y:     rand.Float32() * 0.7,
			size:  rand.Float32()*2 + 1,
			alpha: uint8((rand.Float32()*0.7 + 0.3) * 255),
		}
	}
	w.ExtendBaseWidget(w)

	refresh := func() { fyne.Do(w.Refresh) }
	lh.OnBeam(func(bool) { refresh() })
	lh.OnFrame(func(float64) { refresh() })
	return w
}

func (w *LighthouseWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &lighthouseRenderer{
		w:       w,
		sky:     canvas.NewRectangle(ColorSky),
		sea:     canvas.NewRectangle(ColorSea),
		wave:    canvas.NewRectangle(ColorWave),
		beam:    canvas.NewLine(lighthouse.BeamNeutral),
		lantern: canvas.NewCircle(ColorPanel),
		lamp:    canvas.NewCircle(ColorLamp),
		tower:   canvas.NewRectangle(ColorTower),
		base:    canvas.NewRectangle(color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}),
		door:    canvas.NewRectangle(color.NRGBA{R: 0x85, G: 0x4d, B: 0x0e, A: 0xff}),
		overlay: canvas.NewRectangle(withAlpha(color.Black, 0x80)),
	}
	r.beam.StrokeWidth = beamWidth
	r.wave.CornerRadius = seaHeight / 2

	r.objects = append(r.objects, r.sky, r.sea, r.wave)
	for _, s := range w.stars {
		c := canvas.NewCircle(withAlpha(color.White, s.alpha))
		r.stars = append(r.stars, c)
		r.objects = append(r.objects, c)
	}
	r.objects = append(r.objects, r.beam, r.tower)
	for i := 0; i < stripeCount; i++ {
		s := canvas.NewRectangle(ColorStripe)
		r.stripes = append(r.stripes, s)
		r.objects = append(r.objects, s)
	}
	r.objects = append(r.objects, r.door, r.base, r.lantern, r.lamp, r.overlay)
	for i := 0; i < 5; i++ {
		t := canvas.NewText("", color.White)
		t.TextSize = 11
		r.info = append(r.info, t)
		r.objects = append(r.objects, t)
	}

	r.Refresh()
	return r
}

type lighthouseRenderer struct {
	w *LighthouseWidget

	sky, sea, wave, tower, base, door, overlay *canvas.Rectangle
	stripes                                    []*canvas.Rectangle
	stars                                      []*canvas.Circle
	lantern, lamp                              *canvas.Circle
	beam                                       *canvas.Line
	info                                       []*canvas.Text

	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *lighthouseRenderer) MinSize() fyne.Size {
	return fyne.NewSize(towerWidth*4, towerHeight+lanternSize+80)
}

func (r *lighthouseRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *lighthouseRenderer) Destroy() {}

// lanternCenter is where the beam starts.
func (r *lighthouseRenderer) lanternCenter() fyne.Position {
	top := r.size.Height - towerHeight - 40 - lanternSize
	return fyne.NewPos(r.size.Width/2, top+lanternSize/2)
}

func (r *lighthouseRenderer) Layout(size fyne.Size) {
	r.size = size

	r.sky.Resize(size)
	r.sky.Move(fyne.NewPos(0, 0))
	r.sea.Resize(fyne.NewSize(size.Width, seaHeight))
	r.sea.Move(fyne.NewPos(0, size.Height-seaHeight))
	r.wave.Resize(fyne.NewSize(size.Width, seaHeight/2))
	r.wave.Move(fyne.NewPos(0, size.Height-seaHeight/2))

	for i, s := range r.w.stars {
		c := r.stars[i]
		c.Resize(fyne.NewSize(s.size, s.size))
		c.Move(fyne.NewPos(s.x*size.Width, s.y*size.Height))
	}

	towerX := size.Width/2 - towerWidth/2
	towerY := size.Height - towerHeight - 40
	r.tower.Resize(fyne.NewSize(towerWidth, towerHeight))
	r.tower.Move(fyne.NewPos(towerX, towerY))
	for i, s := range r.stripes {
		s.Resize(fyne.NewSize(towerWidth, 24))
		s.Move(fyne.NewPos(towerX, towerY+float32(i)*64+20))
	}
	r.door.Resize(fyne.NewSize(32, 48))
	r.door.Move(fyne.NewPos(size.Width/2-16, towerY+towerHeight-48))
	r.base.Resize(fyne.NewSize(towerWidth*1.6, 40))
	r.base.Move(fyne.NewPos(size.Width/2-towerWidth*0.8, size.Height-40))

	center := r.lanternCenter()
	r.lantern.Resize(fyne.NewSize(lanternSize, lanternSize))
	r.lantern.Move(fyne.NewPos(center.X-lanternSize/2, center.Y-lanternSize/2))
	r.lamp.Resize(fyne.NewSize(lanternSize*0.6, lanternSize*0.6))
	r.lamp.Move(fyne.NewPos(center.X-lanternSize*0.3, center.Y-lanternSize*0.3))

	r.overlay.Resize(fyne.NewSize(overlayWidth, float32(len(r.info))*16+12))
	r.overlay.Move(fyne.NewPos(16, 16))
	for i, t := range r.info {
		t.Move(fyne.NewPos(24, 22+float32(i)*16))
	}

	r.layoutBeam()
}

func (r *lighthouseRenderer) layoutBeam() {
	center := r.lanternCenter()
	rad := r.w.lh.Angle() * math.Pi / 180
	r.beam.Position1 = center
	r.beam.Position2 = fyne.NewPos(
		center.X+float32(math.Cos(rad))*beamLength,
		center.Y+float32(math.Sin(rad))*beamLength,
	)
}

func (r *lighthouseRenderer) Refresh() {
	lh := r.w.lh
	m := lh.Current()
	snap := lh.Snapshot()

	r.beam.StrokeColor = lh.BeamColor()
	if lh.BeamOn() {
		r.beam.Show()
	} else {
		r.beam.Hide()
	}
	r.layoutBeam()

	beam := "OFF"
	if snap.BeamOn {
		beam = "ON"
	}
	lines := []string{
		"Current Memory: " + truncate(m.Text, 20),
		"Morse: " + truncate(m.Morse, 20),
		"Sentiment: " + string(m.Sentiment),
		"Beam Status: " + beam,
		fmt.Sprintf("%s (%s per pass)", flasher.FormatProgress(snap), flasher.FormatDuration(snap.Period)),
	}
	for i, t := range r.info {
		t.Text = lines[i]
		t.Refresh()
	}
	r.beam.Refresh()
}
