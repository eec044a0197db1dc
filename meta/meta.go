// meta/meta.go
package meta

import "time"

// DEPTH is the default alpha-beta search depth in plies.
const DEPTH = 3

// MODE is the default game mode. Empty asks interactively.
const MODE = ""

// GAMES is the number of games per matchup in an experiment.
const GAMES = 10

// WORKERS is the number of games an experiment plays in parallel.
const WORKERS = 4

// EPISODES is the number of playouts per move of the mcts baseline.
const EPISODES = 1000

// OUTPUT_DIR is where experiment records are written.
const OUTPUT_DIR = "experiments"

// LOG_LEVEL is the default zerolog level.
const LOG_LEVEL = "info"

// MOVE_TIME bounds a single search; zero means depth only.
const MOVE_TIME = time.Duration(0)

// Modes lists the accepted game modes.
var Modes = []string{"hva", "aah", "ava", "bench"}
