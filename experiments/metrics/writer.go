package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig identifies one player configuration in an experiment.
type AgentConfig struct {
	ID        int
	Kind      string // "alphabeta", "mcts" or "random"
	Depth     int
	Episodes  int // mcts only
	Duration  time.Duration
	NoPruning bool
	EvalCache bool
	Seed      uint64
}

type GameRecord struct {
	Agent1 int // AgentConfig.ID, plays X
	Agent2 int // AgentConfig.ID, plays O
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Setup struct {
	Name      string          `json:"name"`
	Matchups  [][]AgentConfig `json:"matchups"`
	NumGames  int             `json:"numGames"` // per matchup
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Duration  time.Duration   `json:"duration"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes all files there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "depth", "episodes", "duration", "no_pruning", "eval_cache", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Episodes),
			config.Duration.String(),
			strconv.FormatBool(config.NoPruning),
			strconv.FormatBool(config.EvalCache),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "depth", "duration", "candidates", "nodes", "leaf_evaluations", "cutoffs", "cache_hits", "timed_out"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.LeafEvaluations),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.CacheHits),
			strconv.FormatBool(record.TimedOut),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
