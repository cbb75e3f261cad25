// Command glyphgrid-term walks an '@' around a walled room in the terminal.
// Moves into walls are rejected by the resolver and answered with a bump.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/glyphgrid/internal/cli"
	"github.com/plus3/glyphgrid/screen"
	"github.com/plus3/glyphgrid/screen/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML or YAML config file.")
	logPath := flag.String("log", "", "Write logs to this file. Logging is off without it.")
	mute := flag.Bool("mute", false, "Disable the bump sound.")
	flag.Parse()

	cfg, err := cli.Load(*configPath)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if *logPath != "" {
		if log, err = cli.NewFileLogger(cfg.Logging, *logPath); err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
	}
	defer func() { _ = log.Sync() }()

	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	defer scr.Fini()

	term.Configure(&cfg.Screen, scr)
	s, err := screen.New(cfg.Screen, screen.WithLogger(log))
	if err != nil {
		return err
	}

	var snd *sound
	if !*mute {
		// Audio failure is non-fatal; the demo runs silent.
		if snd, err = newSound(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
			snd = nil
		}
	}
	defer snd.Close()

	d, err := newDemo(s, term.NewPainter(scr, s.CellSize()), snd)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	if err := d.frame(); err != nil {
		return err
	}
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				more, err := d.handleKey(ev)
				if err != nil {
					return err
				}
				if !more {
					return nil
				}
			case *tcell.EventResize:
				scr.Sync()
				if err := term.Resize(s, scr); err != nil {
					return err
				}
			}
		case <-ticker.C:
		}
		if err := d.frame(); err != nil {
			return err
		}
	}
}
