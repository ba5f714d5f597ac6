package automatic

// Data collection for automatic games: engine vs engine, engine vs random,
// and so on.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hexengine/config"
	tp "github.com/domino14/hexengine/turnplayer"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

	running atomic.Bool
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// RecordsFilename is where the YAML game records of a run that writes its
// CSV summary to outputFilename go.
func RecordsFilename(outputFilename string) string {
	return strings.TrimSuffix(outputFilename, ".csv") + ".yaml"
}

// StartCompVComp plays numGames games between the players in opts, at most
// threads at a time, and blocks until they are all done. One CSV line per
// game goes to outputFilename and the full game records go next to it (see
// RecordsFilename).
func StartCompVComp(ctx context.Context, cfg *config.Config, opts *tp.GameOptions,
	numGames, threads int, outputFilename string) error {

	if !running.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	defer running.Store(false)

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	defer logfile.Close()
	recfile, err := os.Create(RecordsFilename(outputFilename))
	if err != nil {
		return err
	}
	defer recfile.Close()

	runID := NewRunID()
	log.Info().Str("run", runID).Int("games", numGames).Int("threads", threads).
		Str("red", string(opts.Red)).Str("blue", string(opts.Blue)).Msg("starting-autoplay")

	CVCCounter.Set(0)
	gamechan := make(chan *GameRecord, 100)
	written := make(chan error, 1)
	go func() {
		written <- writeRecords(logfile, recfile, gamechan)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	IsPlaying.Add(1)
	for i := range numGames {
		if gctx.Err() != nil {
			log.Info().Msg("Got stop signal, exiting soon...")
			break
		}
		g.Go(func() error {
			r := NewGameRunner(gamechan, cfg, opts)
			if err := r.Init(GameSeed(runID, i)); err != nil {
				return err
			}
			if _, err := r.PlayGame(gctx); err != nil {
				return fmt.Errorf("game %d of run %s: %w", i, runID, err)
			}
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%100 == 0 {
				log.Info().Int64("games", n).Msg("autoplay-progress")
			}
			return nil
		})
	}
	err = g.Wait()
	IsPlaying.Add(-1)
	close(gamechan)
	werr := <-written
	log.Info().Int64("games", CVCCounter.Value()).Msg("All games finished.")
	return errors.Join(err, werr)
}

func writeRecords(csvw, yamlw io.Writer, gamechan chan *GameRecord) error {
	var err error
	_, err = io.WriteString(csvw, gameCSVHeader)
	enc := yaml.NewEncoder(yamlw)
	for rec := range gamechan {
		// keep draining on error so that no game blocks on the channel
		if err != nil {
			continue
		}
		if _, err = io.WriteString(csvw, rec.CSVLine()); err != nil {
			continue
		}
		err = enc.Encode(rec)
	}
	return errors.Join(err, enc.Close())
}
