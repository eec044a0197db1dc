package experiments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"uttt/engine"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"
	"uttt/searcher/agent"
	"uttt/searcher/mcts"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	TimeBudget      = 200 * time.Millisecond
	DefaultEpisodes = 1000 // playouts per mcts move
)

// Matchup pairs two agent configs; the first one plays X in even-numbered
// games and O in odd-numbered ones.
type Matchup [2]metrics.AgentConfig

type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	Matchups []Matchup
	NumGames int // per matchup
	Workers  int // games played in parallel
}

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "alphabeta", Depth: 1},
	{ID: 2, Kind: "alphabeta", Depth: 2},
	{ID: 3, Kind: "alphabeta", Depth: 3},
	{ID: 4, Kind: "alphabeta", Depth: 4, Duration: TimeBudget},
}

// DepthExperiment pairs every search depth against a random baseline and
// against the default depth.
func DepthExperiment(numGames, workers int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "random", Seed: 1}
	reference := depthConfigs[searcher.DefaultDepth-1]
	matchups := []Matchup{}
	for _, config := range depthConfigs {
		matchups = append(matchups, Matchup{config, baseline})
		if config.ID != reference.ID {
			matchups = append(matchups, Matchup{config, reference})
		}
	}
	return Experiment{
		Name:     "depth",
		Configs:  append([]metrics.AgentConfig{baseline}, depthConfigs...),
		Matchups: matchups,
		NumGames: numGames,
		Workers:  workers,
	}
}

// PruningExperiment plays pruned against unpruned search at equal depth. The
// games should be identical, only the node counts differ.
func PruningExperiment(depth, numGames, workers int) Experiment {
	pruned := metrics.AgentConfig{ID: 1, Kind: "alphabeta", Depth: depth}
	plain := metrics.AgentConfig{ID: 2, Kind: "alphabeta", Depth: depth, NoPruning: true}
	cached := metrics.AgentConfig{ID: 3, Kind: "alphabeta", Depth: depth, EvalCache: true}
	return Experiment{
		Name:     "pruning",
		Configs:  []metrics.AgentConfig{pruned, plain, cached},
		Matchups: []Matchup{{pruned, plain}, {pruned, cached}},
		NumGames: numGames,
		Workers:  workers,
	}
}

// MCTSExperiment pairs every search depth against a UCT baseline with a fixed
// number of playouts per move.
func MCTSExperiment(episodes, numGames, workers int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Episodes: episodes, Seed: 1}
	matchups := make([]Matchup, 0, len(depthConfigs))
	for _, config := range depthConfigs[:searcher.DefaultDepth] {
		matchups = append(matchups, Matchup{config, baseline})
	}
	return Experiment{
		Name:     "mcts",
		Configs:  append([]metrics.AgentConfig{baseline}, depthConfigs[:searcher.DefaultDepth]...),
		Matchups: matchups,
		NumGames: numGames,
		Workers:  workers,
	}
}

// Report is what an experiment run produced.
type Report struct {
	Dir   string // directory holding the written records
	Games []metrics.GameRecord
}

type outcome struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays every game of the experiment and stores the records under root.
func Run(ctx context.Context, exp Experiment, root string) (*Report, error) {
	start := time.Now()
	log.Info().Msgf("starting %s experiment...", exp.Name)

	var mu sync.Mutex
	outcomes := make([]outcome, 0, len(exp.Matchups)*exp.NumGames)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Workers, 1))
	for mi, matchup := range exp.Matchups {
		for i := 0; i < exp.NumGames; i++ {
			// Alternate the starting agent
			x, o := matchup[0], matchup[1]
			if i%2 == 1 {
				x, o = o, x
			}
			// Vary random agents between games
			x.Seed += uint64(mi*exp.NumGames + i)
			o.Seed += uint64(mi*exp.NumGames + i)
			mi, i := mi, i
			g.Go(func() error {
				log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(exp.Matchups), i+1, exp.NumGames)
				out, err := runGame(ctx, x, o)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(exp.Matchups), i+1, out.game.Winner)

				mu.Lock()
				outcomes = append(outcomes, out)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Msgf("completed %s experiment", exp.Name)

	gameRecords := make([]metrics.GameRecord, 0, len(outcomes))
	moveRecords := []metrics.MoveRecord{}
	for _, out := range outcomes {
		gameRecords = append(gameRecords, out.game)
		moveRecords = append(moveRecords, out.moves...)
	}

	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	matchups := make([][]metrics.AgentConfig, len(exp.Matchups))
	for i, m := range exp.Matchups {
		matchups[i] = m[:]
	}
	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Name:      exp.Name,
		Matchups:  matchups,
		NumGames:  exp.NumGames,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	})
	if err != nil {
		return nil, err
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return &Report{Dir: writer.Dir(), Games: gameRecords}, nil
}

// runGame executes a single game, x moving first.
func runGame(ctx context.Context, x, o metrics.AgentConfig) (outcome, error) {
	var e engine.Runner = engine.LocalEngine([]agent.Agent{NewAgent(x), NewAgent(o)})

	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return outcome{}, err
	}

	out := outcome{
		game:  metrics.GameRecord{Agent1: x.ID, Agent2: o.ID, GameMetric: gameMetric},
		moves: make([]metrics.MoveRecord, len(moveMetrics)),
	}
	for i, mm := range moveMetrics {
		out.moves[i] = metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm}
	}
	return out, nil
}

// NewAgent builds the agent described by config.
func NewAgent(config metrics.AgentConfig) agent.Agent {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(config.Seed)
	case "mcts":
		return agent.NewMCTSAgent(NewMCTS(config))
	default:
		return agent.NewEvaluationAgent(NewSearch(config))
	}
}

func NewSearch(config metrics.AgentConfig) *searcher.AlphaBeta {
	options := []searcher.Option{searcher.WithMetrics()}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.NoPruning {
		options = append(options, searcher.WithoutPruning())
	}
	if config.EvalCache {
		options = append(options, searcher.WithEvalCache())
	}
	return searcher.NewAlphaBeta(options...)
}

// NewMCTS runs one goroutine per search since games already run in parallel.
// Episodes take precedence over a duration.
func NewMCTS(config metrics.AgentConfig) *mcts.MCTS {
	options := []mcts.Option{mcts.WithSeed(config.Seed), mcts.WithMetrics()}
	switch {
	case config.Episodes > 0:
		options = append(options, mcts.WithEpisodes(config.Episodes))
	case config.Duration > 0:
		options = append(options, mcts.WithDuration(config.Duration))
	default:
		options = append(options, mcts.WithEpisodes(DefaultEpisodes))
	}
	return mcts.New(1, options...)
}

// Summary tallies wins per agent ID.
func Summary(records []metrics.GameRecord) map[int]int {
	wins := map[int]int{}
	for _, r := range records {
		switch r.Winner {
		case game.X.String():
			wins[r.Agent1]++
		case game.O.String():
			wins[r.Agent2]++
		}
	}
	return wins
}
