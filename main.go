package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"MemoryMorse/clock"
	"MemoryMorse/config"
	"MemoryMorse/control"
	"MemoryMorse/i18n"
	"MemoryMorse/ui"
)

//go:embed assets/*
var content embed.FS

type options struct {
	configPath string
	lang       string
	audio      bool
	volume     int
	debug      bool
}

func parseFlags(args []string) (options, *pflag.FlagSet, error) {
	var opts options
	flagSet := pflag.NewFlagSet("memorymorse", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "YAML file overriding the built-in settings (default: $"+config.EnvConfig+")")
	flagSet.StringVar(&opts.lang, "lang", "", "UI language: en, pt, es or ru (default: $"+i18n.EnvLang+" or the system locale)")
	flagSet.BoolVar(&opts.audio, "audio", false, "play the Morse tone while the beam is lit")
	flagSet.IntVar(&opts.volume, "volume", 0, "tone volume, 0-100")
	flagSet.BoolVar(&opts.debug, "debug", false, "log flasher and lighthouse events")
	err := flagSet.Parse(args)
	return opts, flagSet, err
}

// applyFlags overrides cfg with the flags the user actually set.
func applyFlags(cfg *config.Config, opts options, flagSet *pflag.FlagSet) error {
	if flagSet.Changed("audio") {
		cfg.Audio.Enabled = opts.audio
	}
	if flagSet.Changed("volume") {
		cfg.Audio.Volume = opts.volume
	}
	if flagSet.Changed("lang") {
		cfg.Lang = opts.lang
	}
	return cfg.Validate()
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	opts, flagSet, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Invalid arguments: %v", err)
	}

	cfg, err := config.Load(content, opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := applyFlags(cfg, opts, flagSet); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	// .env may have set the language after i18n's own detection ran.
	if lang := os.Getenv(i18n.EnvLang); lang != "" && cfg.Lang == "" {
		cfg.Lang = lang
	}
	i18n.SetLang(cfg.Lang)

	if opts.debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	fyneApp := app.New()
	if iconBytes, err := content.ReadFile("assets/icon.png"); err == nil {
		fyneApp.SetIcon(fyne.NewStaticResource("icon.png", iconBytes))
	} else {
		log.Printf("Failed to load icon. %v", err)
	}
	fyneApp.Settings().SetTheme(ui.NewNightTheme())

	var tone tonePlayer
	bt, err := newBeepTone(content, cfg.Audio)
	if err != nil {
		log.Printf("Audio disabled: %v", err)
	} else {
		tone = bt
		defer bt.Close()
	}

	a := NewAppManager(content, cfg, clock.Real(), tone)
	started := make(chan error, 1)
	a.EnqueueCommand(control.Command{Type: control.CmdStart, Reply: started})
	<-started

	w := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(func() {
		cancel()
		a.Shutdown()
	})

	go a.tick(ctx)

	w.ShowAndRun()
}
