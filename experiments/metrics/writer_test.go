package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "depth")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "depth"), filepath.Dir(w.Dir()))

	configs := []AgentConfig{
		{ID: 0, Kind: "random", Seed: 1},
		{ID: 1, Kind: "alphabeta", Depth: 3, Duration: 200 * time.Millisecond, EvalCache: true},
		{ID: 2, Kind: "mcts", Episodes: 500, Seed: 7},
	}
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	games := []GameRecord{{
		Agent1: 1,
		Agent2: 0,
		GameMetric: GameMetric{
			ID: "g1", StartingPlayer: "X", Winner: "X",
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 2,
		},
	}}
	moves := []MoveRecord{
		{Game: "g1", MoveMetric: MoveMetric{Step: 1, Player: "X", Move: "4,4", SearchMetric: SearchMetric{Depth: 3, Candidates: 81, Nodes: 120, Cutoffs: 7}}},
		{Game: "g1", MoveMetric: MoveMetric{Step: 2, Player: "O", Move: "4,0", SearchMetric: SearchMetric{Candidates: 8, TimedOut: true}}},
	}

	require.NoError(t, w.WriteSetup(Setup{Name: "depth", Matchups: [][]AgentConfig{configs}, NumGames: 1, StartTime: start}))
	require.NoError(t, w.WriteAgentConfigs(configs))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteMoveRecords(moves))

	t.Run("setup", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.json"))
		require.NoError(t, err)
		var setup Setup
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, "depth", setup.Name)
		require.Equal(t, 1, setup.NumGames)
		require.Len(t, setup.Matchups, 1)
	})

	t.Run("agent configs", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "kind", "depth", "episodes", "duration", "no_pruning", "eval_cache", "seed"},
			{"0", "random", "0", "0", "0s", "false", "false", "1"},
			{"1", "alphabeta", "3", "0", "200ms", "false", "true", "0"},
			{"2", "mcts", "0", "500", "0s", "false", "false", "7"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"g1", "1", "0", "X", "X", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "2"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "leaf_evaluations", rows[0][8])
		require.Equal(t, []string{"g1", "1", "X", "4,4", "3", "0s", "81", "120", "0", "7", "0", "false"}, rows[1])
		require.Equal(t, "true", rows[2][11])
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4)
	c.SetCandidates(9)
	for i := 0; i < 5; i++ {
		c.AddNode()
	}
	c.AddLeaf()
	c.AddCutoff()
	c.AddCacheHit()
	c.SetTimedOut()

	m := c.Complete()

	require.Equal(t, 4, m.Depth)
	require.Equal(t, 9, m.Candidates)
	require.Equal(t, 5, m.Nodes)
	require.Equal(t, 1, m.LeafEvaluations)
	require.Equal(t, 1, m.Cutoffs)
	require.Equal(t, 1, m.CacheHits)
	require.True(t, m.TimedOut)
	require.GreaterOrEqual(t, m.Duration, time.Duration(0))

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
