package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"uttt/engine"
	"uttt/experiments"
	"uttt/gamemaster"
	"uttt/meta"
	"uttt/player"
	"uttt/searcher"
	"uttt/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (yaml, json, toml or env)")
	mode := flag.String("mode", "", "Game mode: hva (human first), aah (AI first), ava (AI vs AI) or bench")
	depth := flag.Int("depth", 0, "Search depth in plies")
	moveTime := flag.Duration("movetime", 0, "Time budget per AI move, 0 for depth only")
	flag.Parse()

	cfg, err := meta.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *mode != "" {
		cfg.Mode = *mode
	} else if flag.NArg() > 0 && slices.Contains(meta.Modes, flag.Arg(0)) {
		cfg.Mode = flag.Arg(0)
	} else if flag.NArg() > 0 {
		cfg.Mode = ""
	}
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *moveTime > 0 {
		cfg.MoveTime = *moveTime
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	interactive := cfg.Mode != "bench"
	go func() {
		handleInterrupt(signals, cancel, interactive, os.Exit)
		signal.Stop(signals)
	}()

	if cfg.Mode == "bench" {
		err = runBench(ctx, cfg)
	} else {
		err = runGame(ctx, cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("stopped")
		os.Exit(1)
	}
}

// handleInterrupt cancels the run on the first signal. Interactive games block
// on stdin between context checks, so they exit right away with 130. Other
// runs wind down through the context; once signals are released a second
// interrupt kills the process.
func handleInterrupt(signals <-chan os.Signal, cancel context.CancelFunc, interactive bool, exit func(code int)) {
	if _, ok := <-signals; !ok {
		return
	}
	cancel()
	if interactive {
		fmt.Fprintln(os.Stderr, "\ninterrupted")
		exit(130)
	}
}

func runGame(ctx context.Context, cfg *meta.Config) error {
	fmt.Println("\n==== ULTIMATE TIC TAC TOE ====")
	fmt.Println("\nRules:")
	fmt.Println("1. Each turn, play in the small board indicated by the previous move")
	fmt.Println("2. Win three small boards in a row to win the game")
	if cfg.Mode == "" {
		fmt.Println("\nGame modes:")
		fmt.Println("  hva - Human vs AI (default)")
		fmt.Println("  aah - AI vs Human")
		fmt.Println("  ava - AI vs AI")
		cfg.Mode = player.PromptMode(os.Stdin, os.Stdout)
	}

	renderer := player.NewRenderer(os.Stdout)
	human := player.NewHuman(os.Stdin, os.Stdout, renderer)
	ai := player.Announce(agent.NewEvaluationAgent(newSearch(cfg)), os.Stdout)

	var agents []agent.Agent
	options := []engine.Option{}
	switch cfg.Mode {
	case "hva":
		agents = []agent.Agent{human, ai}
		fmt.Println("\nYou're playing as X (first)")
	case "aah":
		agents = []agent.Agent{ai, human}
		fmt.Println("\nYou're playing as O (second)")
	default:
		agents = []agent.Agent{ai, player.Announce(agent.NewEvaluationAgent(newSearch(cfg)), os.Stdout)}
		fmt.Println("\nAI vs AI demonstration")
		options = append(options, engine.WithObserver(func(u gamemaster.Update) {
			renderer.Render(u.State)
		}))
	}

	master := gamemaster.NewLocalMaster()
	options = append(options, engine.WithMaster(master))
	_, _, _, err := engine.LocalEngine(agents, options...).Run(ctx)
	if err != nil {
		return err
	}

	renderer.RenderResult(master.State())
	fmt.Println("\nThanks for playing!")
	return nil
}

func runBench(ctx context.Context, cfg *meta.Config) error {
	for _, exp := range []experiments.Experiment{
		experiments.DepthExperiment(cfg.Games, cfg.Workers),
		experiments.PruningExperiment(cfg.Depth, cfg.Games, cfg.Workers),
		experiments.MCTSExperiment(cfg.Episodes, cfg.Games, cfg.Workers),
	} {
		report, err := experiments.Run(ctx, exp, cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("%s experiment: %w", exp.Name, err)
		}
		for id, wins := range experiments.Summary(report.Games) {
			log.Info().Msgf("%s: agent %d won %d games", exp.Name, id, wins)
		}
		log.Info().Msgf("%s records stored in %s", exp.Name, report.Dir)
	}
	return nil
}

func newSearch(cfg *meta.Config) *searcher.AlphaBeta {
	options := []searcher.Option{searcher.WithDepth(cfg.Depth)}
	if cfg.MoveTime > 0 {
		options = append(options, searcher.WithDuration(cfg.MoveTime))
	}
	if cfg.EvalCache {
		options = append(options, searcher.WithEvalCache())
	}
	return searcher.NewAlphaBeta(options...)
}
