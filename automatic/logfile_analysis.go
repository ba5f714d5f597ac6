package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/hexengine/stats"
)

// confidence of the reported win-rate intervals, in percent
const confidence = 95.0

// AnalyzeLogFile analyzes the given game CSV file and spits out a bunch of
// statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyze(file)
}

func analyze(in io.Reader) (string, error) {
	r := csv.NewReader(in)

	// Record looks like:
	// gameID,seed,red,blue,first,winner,turns,fallbacks

	redWins := &stats.Proportion{}
	firstWins := &stats.Proportion{}
	turns := &stats.Running{}
	fallbacks := 0
	var redName, blueName string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		if len(record) != 8 {
			return "", fmt.Errorf("bad record %v", record)
		}
		redName, blueName = record[2], record[3]
		redWins.Push(record[5] == "R")
		firstWins.Push(record[5] == record[4])
		n, err := strconv.Atoi(record[6])
		if err != nil {
			return "", err
		}
		turns.Push(float64(n))
		f, err := strconv.Atoi(record[7])
		if err != nil {
			return "", err
		}
		fallbacks += f
	}
	if redWins.Trials() == 0 {
		return "", fmt.Errorf("no games in log")
	}

	// build stats string
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", redWins.Trials())
	lo, hi := redWins.Interval(confidence)
	fmt.Fprintf(&sb, "Red (%v) wins: %d (%.3f%%, %.0f%% CI %.3f%% - %.3f%%)\n",
		redName, redWins.Successes(), 100*redWins.Rate(), confidence, 100*lo, 100*hi)
	fmt.Fprintf(&sb, "Blue (%v) wins: %d (%.3f%%)\n",
		blueName, redWins.Trials()-redWins.Successes(), 100*(1-redWins.Rate()))
	fmt.Fprintf(&sb, "Player who went first wins: %d (%.3f%%)\n",
		firstWins.Successes(), 100*firstWins.Rate())
	lo, hi = turns.Interval(confidence)
	fmt.Fprintf(&sb, "Game length: mean %.3f  stdev %.3f (%.0f%% CI %.3f - %.3f)\n",
		turns.Mean(), turns.Stdev(), confidence, lo, hi)
	fmt.Fprintf(&sb, "Fallback moves: %d\n", fallbacks)
	return sb.String(), nil
}
