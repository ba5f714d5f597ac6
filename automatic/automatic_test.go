package automatic

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	tp "github.com/domino14/hexengine/turnplayer"
)

var DefaultConfig = config.DefaultConfig()

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func randomOpts() *tp.GameOptions {
	opts := &tp.GameOptions{Red: tp.KindRandom, Blue: tp.KindRandom}
	opts.SetDefaults(DefaultConfig)
	return opts
}

func TestRandomGameFinishes(t *testing.T) {
	is := is.New(t)
	rec, err := PlaySeededGame(context.Background(), DefaultConfig, randomOpts(), 17)
	is.NoErr(err)
	is.True(rec.Winner == "R" || rec.Winner == "B")
	is.Equal(rec.First, "R")
	is.Equal(rec.Fallbacks(), 0)
	// the shortest possible Hex game has 14 stones of the winner
	is.True(len(rec.Turns) >= 27)
}

func TestSeedReplaysGame(t *testing.T) {
	is := is.New(t)
	r1, err := PlaySeededGame(context.Background(), DefaultConfig, randomOpts(), 99)
	is.NoErr(err)
	r2, err := PlaySeededGame(context.Background(), DefaultConfig, randomOpts(), 99)
	is.NoErr(err)
	is.Equal(r1.Turns, r2.Turns)
	is.Equal(r1.Winner, r2.Winner)

	r3, err := PlaySeededGame(context.Background(), DefaultConfig, randomOpts(), 100)
	is.NoErr(err)
	is.True(len(r3.Turns) != len(r1.Turns) || r3.Turns[0] != r1.Turns[0] || r3.Turns[1] != r1.Turns[1] ||
		r3.Turns[2] != r1.Turns[2])
}

func TestBlueFirst(t *testing.T) {
	is := is.New(t)
	opts := randomOpts()
	is.NoErr(opts.SetFirst("blue"))
	rec, err := PlaySeededGame(context.Background(), DefaultConfig, opts, 3)
	is.NoErr(err)
	is.Equal(rec.First, "B")
	is.True(len(rec.Turns) >= 27)
}

func TestEngineBeatsRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("plays a full engine game")
	}
	is := is.New(t)
	opts := &tp.GameOptions{Red: tp.KindEngine, Blue: tp.KindRandom, Depth: 1}
	opts.SetDefaults(DefaultConfig)
	rec, err := PlaySeededGame(context.Background(), DefaultConfig, opts, 5)
	is.NoErr(err)
	is.Equal(rec.Winner, "R")
	is.Equal(rec.Fallbacks(), 0)
	is.Equal(rec.Turns[0].Move, "h6")
}

func TestHumanCannotAutoplay(t *testing.T) {
	opts := &tp.GameOptions{Blue: tp.KindRandom}
	opts.SetDefaults(DefaultConfig)
	r := NewGameRunner(nil, DefaultConfig, opts)
	require.Error(t, r.Init(1))
}

func TestCancelledGame(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec, err := PlaySeededGame(ctx, DefaultConfig, randomOpts(), 1)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(len(rec.Turns), 0)
}

func TestCompVComp(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "games.csv")
	err := StartCompVComp(context.Background(), DefaultConfig, randomOpts(), 6, 3, out)
	is.NoErr(err)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	csvData, err := os.ReadFile(out)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	is.Equal(len(lines), 7)
	is.Equal(lines[0]+"\n", gameCSVHeader)

	f, err := os.Open(RecordsFilename(out))
	is.NoErr(err)
	defer f.Close()
	dec := yaml.NewDecoder(f)
	n := 0
	for {
		var rec GameRecord
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		is.NoErr(err)
		is.True(rec.Winner != "")
		n++
	}
	is.Equal(n, 6)

	stats, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.True(strings.Contains(stats, "Games played: 6\n"))
	is.True(strings.Contains(stats, "Fallback moves: 0\n"))
}

func TestAnalyze(t *testing.T) {
	is := is.New(t)
	log := gameCSVHeader +
		"a,1,engine,random,R,R,40,0\n" +
		"b,2,engine,random,B,R,50,1\n" +
		"c,3,engine,random,R,B,60,0\n" +
		"d,4,engine,random,B,R,70,2\n"
	s, err := analyze(strings.NewReader(log))
	is.NoErr(err)
	is.True(strings.Contains(s, "Games played: 4\n"))
	is.True(strings.Contains(s, "Red (engine) wins: 3 (75.000%"))
	is.True(strings.Contains(s, "Blue (random) wins: 1 (25.000%)\n"))
	is.True(strings.Contains(s, "Player who went first wins: 1 (25.000%)\n"))
	is.True(strings.Contains(s, "Game length: mean 55.000  stdev 12.910 (95% CI 42.348 - 67.652)\n"))
	is.True(strings.Contains(s, "Fallback moves: 3\n"))

	_, err = analyze(strings.NewReader(gameCSVHeader))
	is.True(err != nil)
}

func TestGameSeed(t *testing.T) {
	is := is.New(t)
	is.Equal(GameSeed("abc", 1), GameSeed("abc", 1))
	is.True(GameSeed("abc", 1) != GameSeed("abc", 2))
	is.True(sideSource(1, board.Red).Uint64() != sideSource(1, board.Blue).Uint64())
}
