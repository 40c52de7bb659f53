package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/werewolf/internal/config"
	"github.com/aaronzipp/werewolf/internal/console"
	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/game"
	"github.com/aaronzipp/werewolf/internal/llm"
	"github.com/aaronzipp/werewolf/internal/logger"
	"github.com/aaronzipp/werewolf/internal/models"
	"github.com/aaronzipp/werewolf/internal/players"
	"github.com/aaronzipp/werewolf/internal/render"
	"github.com/aaronzipp/werewolf/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "werewolf:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog := openLog(cfg.LogDir)
	defer closeLog()
	log := logger.New(cfg.LogLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = game.NewSeed(); err != nil {
			return err
		}
	}
	log.Info().Uint64("seed", seed).Msg("seeded")

	prompter := console.NewPrompter(os.Stdin, os.Stdout, cancel)
	table := game.Table{HumanName: cfg.PlayerName, Autoplay: cfg.Autoplay}
	if !table.Autoplay && table.HumanName == "" {
		fmt.Println(render.Banner("Werewolf"))
		if table.HumanName, err = prompter.Ask(ctx, "What is your name?"); err != nil {
			return err
		}
	}

	custom, err := cfg.Composition()
	if err != nil {
		return err
	}
	rng := game.NewRand(seed)
	rec, err := game.NewGame(cfg.Board, custom, table, rng)
	if err != nil {
		return err
	}
	log = log.With().Str("game", rec.GameID).Logger()

	gen := llm.New(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		RPS:         cfg.LLM.RPS,
	}, log)
	if !cfg.LLM.Enabled() {
		fmt.Println("DEEPSEEK_API_KEY is not set, computer players fall back to simple rules.")
	}

	providers := make(map[int]game.Provider, rec.SeatCount())
	viewer := events.Spectator
	for _, p := range rec.Roster() {
		if p.Human {
			providers[p.ID] = players.NewHuman(prompter)
			viewer = events.Viewer{ID: p.ID, Camp: p.Camp()}
			continue
		}
		providers[p.ID] = players.NewAuto(gen, seed+uint64(p.ID), log.With().Int("player", p.ID).Logger())
	}

	bus := events.NewBroadcaster(log)
	bus.Subscribe(viewer, console.NewPrinter(os.Stdout, viewer))

	engine := game.New(rec, providers, game.Deps{
		Rand:     rng,
		Log:      log,
		Events:   bus,
		Narrator: llm.NewNarrator(gen, log),
		Settings: cfg.Settings(),
	})
	out, err := engine.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Game aborted.")
			return nil
		}
		return err
	}

	archive(ctx, cfg, log, out.Log)
	return nil
}

// openLog writes logs to a file so they stay out of the game's output
func openLog(dir string) (io.Writer, func()) {
	f, err := logger.OpenFile(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "werewolf: logging to stderr:", err)
		return os.Stderr, func() {}
	}
	return f, func() { _ = f.Close() }
}

func archive(ctx context.Context, cfg *config.Config, log zerolog.Logger, doc models.GameLog) {
	// the game is over; archiving must not be cut short by a late ctrl+c
	ctx = context.WithoutCancel(ctx)

	memory := store.NewMemory()
	files := store.NewFiles(cfg.LogDir)
	path, err := files.Write(doc)
	if err != nil {
		log.Error().Err(err).Msg("game log not written")
	} else {
		fmt.Println("Game log saved to", path)
	}

	archives := []store.Archive{memory}
	if cfg.ArchiveDB != "" {
		db, err := store.OpenSQLite(ctx, cfg.ArchiveDB)
		if err != nil {
			log.Error().Err(err).Msg("archive database unavailable")
		} else {
			defer db.Close()
			archives = append(archives, db)
		}
	}
	if err := store.SaveAll(ctx, log, doc, archives...); err != nil {
		fmt.Fprintln(os.Stderr, "werewolf: archiving failed:", err)
		return
	}
	log.Info().Int("archived", len(memory.List())).Msg("game archived")
}
