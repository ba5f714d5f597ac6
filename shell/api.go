package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/hexengine/ai/player"
	aitp "github.com/domino14/hexengine/ai/turnplayer"
	"github.com/domino14/hexengine/automatic"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/heuristic"
	tp "github.com/domino14/hexengine/turnplayer"
)

// extractFields splits a command line into the command, its positional
// arguments and its -option value pairs. Negative numbers are arguments.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if _, nerr := strconv.ParseFloat(f, 64); strings.HasPrefix(f, "-") && nerr != nil {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			cmd.options[f[1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("usage")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) applyGameOptions(options map[string]string) error {
	for k, v := range options {
		var err error
		switch k {
		case "first":
			err = sc.options.SetFirst(v)
		case "red", "blue":
			err = sc.options.SetPlayer(k, v)
		case "depth":
			sc.options.Depth, err = strconv.Atoi(v)
		default:
			err = fmt.Errorf("unknown option -%v", k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if err := sc.applyGameOptions(cmd.options); err != nil {
		return nil, err
	}
	g, err := tp.BaseTurnPlayerFromOptions(sc.options)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.players = map[board.Side]aitp.AITurnPlayer{}
	sc.analysts = map[board.Side]*player.HexPlayer{}
	for _, side := range []board.Side{board.Red, board.Blue} {
		if sc.options.KindFor(side) == tp.KindHuman {
			continue
		}
		p, err := aitp.NewAITurnPlayer(sc.config, sc.options, side, nil)
		if err != nil {
			return nil, err
		}
		if hp, ok := p.(*player.HexPlayer); ok {
			sc.attachSearchLog(hp)
		}
		sc.players[side] = p
	}
	moves, err := sc.runAITurns()
	if err != nil {
		return nil, err
	}
	return msg(moves + sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <cell> [<cell> ...]")
	}
	var out strings.Builder
	for _, cell := range cmd.args {
		side := sc.game.PlayerOnTurn()
		if _, ok := sc.players[side]; ok {
			return nil, fmt.Errorf("%v is played by the machine; use aiplay", side)
		}
		m, err := sc.game.ParseMove([]string{cell})
		if err != nil {
			return nil, err
		}
		if err := sc.game.Play(m); err != nil {
			return nil, err
		}
		moves, err := sc.runAITurns()
		out.WriteString(moves)
		if err != nil {
			return nil, err
		}
	}
	return msg(out.String() + sc.game.ToDisplayText()), nil
}

// undo takes back moves until a human is on turn again.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Unplay() {
		return nil, errors.New("nothing to undo")
	}
	for {
		if _, ai := sc.players[sc.game.PlayerOnTurn()]; !ai || !sc.game.Unplay() {
			break
		}
	}
	sc.syncAll()
	return msg(sc.game.ToDisplayText()), nil
}

// generate shows the engine's choice for the side on turn without playing
// it.
func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if !sc.IsPlaying() {
		return nil, errors.New("the game is over")
	}
	side := sc.game.PlayerOnTurn()
	p, err := sc.engineFor(side)
	if err != nil {
		return nil, err
	}
	r := p.ComputeMove(sc.game.Game)
	// the engine recorded its move; forget it
	p.Sync(sc.game.Game)
	if r.Fallback {
		return msg(fmt.Sprintf("%v: %v (fallback: %v)", side, r.Move.ShortDescription(), r.Err)), nil
	}
	return msg(fmt.Sprintf("%v: %v (%.4f)\n  pv: %v\n  nodes: %d", side, r.Move.ShortDescription(),
		r.Score, p.Solver().PrincipalVariation().String(), p.Solver().Nodes())), nil
}

// aiplay lets the engine move for the side on turn, human or not.
func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if !sc.IsPlaying() {
		return nil, errors.New("the game is over")
	}
	side := sc.game.PlayerOnTurn()
	var p aitp.AITurnPlayer
	if mp, ok := sc.players[side]; ok {
		p = mp
	} else {
		hp, err := sc.engineFor(side)
		if err != nil {
			return nil, err
		}
		p = hp
	}
	r := p.ComputeMove(sc.game.Game)
	if err := sc.game.Play(r.Move); err != nil {
		return nil, err
	}
	out := fmt.Sprintf("%v plays %v (%.4f)\n", side, r.Move.ShortDescription(), r.Score)
	moves, err := sc.runAITurns()
	if err != nil {
		return nil, err
	}
	return msg(out + moves + sc.game.ToDisplayText()), nil
}

func (sc *ShellController) attention(cmd *shellcmd) (*Response, error) {
	mem, err := sc.memoryFor(cmd.args)
	if err != nil {
		return nil, err
	}
	probs := mem.Attention.Probabilities()
	var out strings.Builder
	out.WriteString(mem.Grid().HeatDisplayText(mem.Me(), probs))
	idx := lo.Filter(lo.Range(len(probs)), func(i int, _ int) bool { return probs[i] > 0 })
	sort.SliceStable(idx, func(a, b int) bool { return probs[idx[a]] > probs[idx[b]] })
	for _, i := range lo.Slice(idx, 0, 10) {
		fmt.Fprintf(&out, "  %v %.4f\n", board.CoordFromIndex(i).Position(), probs[i])
	}
	return msg(out.String()), nil
}

func (sc *ShellController) structures(cmd *shellcmd) (*Response, error) {
	mem, err := sc.memoryFor(cmd.args)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%v to move, seen from %v\n%v", sc.game.PlayerOnTurn(), mem.Me(),
		mem.Structures.String())), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	side := sc.game.PlayerOnTurn()
	if len(cmd.args) > 0 {
		var err error
		if side, err = board.SideFromString(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	p, err := sc.engineFor(side)
	if err != nil {
		return nil, err
	}
	ev := p.Evaluator()
	ev.Prepare(p.Memory())
	return msg(fmt.Sprintf("seen from %v\n%v", side, ev.Explain(p.Memory()))), nil
}

func (sc *ShellController) showSettings() string {
	var out strings.Builder
	out.WriteString("Settings:\n")
	fmt.Fprintf(&out, "  first: %v\n", sc.options.FirstSide)
	fmt.Fprintf(&out, "  red: %v\n", sc.options.Red)
	fmt.Fprintf(&out, "  blue: %v\n", sc.options.Blue)
	fmt.Fprintf(&out, "  depth: %v\n", sc.options.Depth)
	for _, k := range []string{config.ConfigBranchingFactor, config.ConfigLocalBranchingFactor,
		config.ConfigLocalDepth, config.ConfigSearchLogPath} {
		fmt.Fprintf(&out, "  %v: %v\n", k, sc.config.Get(k))
	}
	pins := heuristic.PinsFromConfig(sc.config)
	keys := lo.Keys(pins)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&out, "  %v: %v\n", k, pins[k])
	}
	return out.String()
}

// set changes a game option (first, red, blue, depth) or a config key.
// heuristic.* keys take effect immediately, the rest with the next game.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.showSettings()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	key, val := cmd.args[0], cmd.args[1]
	switch {
	case key == "first" || key == "red" || key == "blue" || key == "depth":
		if err := sc.applyGameOptions(map[string]string{key: val}); err != nil {
			return nil, err
		}
	case strings.HasPrefix(key, "heuristic."):
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, err
		}
		if err := (heuristic.Pins{}).Set(key, f); err != nil {
			return nil, err
		}
		sc.config.Set(key, f)
		pins := heuristic.PinsFromConfig(sc.config)
		for _, p := range sc.engines() {
			p.Evaluator().SetPins(pins)
		}
	default:
		if !sc.config.IsSet(key) {
			return nil, fmt.Errorf("unknown setting %v", key)
		}
		sc.config.Set(key, val)
	}
	return msg("set " + key + " to " + val), nil
}

func (sc *ShellController) engines() []*player.HexPlayer {
	var ps []*player.HexPlayer
	for _, p := range sc.players {
		if hp, ok := p.(*player.HexPlayer); ok {
			ps = append(ps, hp)
		}
	}
	return append(ps, lo.Values(sc.analysts)...)
}

// autoplay plays a self-play batch, or analyzes the log of one:
//
//	autoplay [-games n] [-threads n] [-red engine] [-blue random] [-depth n] [-file f]
//	autoplay analyze <file>
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		if cmd.args[0] != "analyze" || len(cmd.args) != 2 {
			return nil, errors.New("usage: autoplay analyze <file>")
		}
		stats, err := automatic.AnalyzeLogFile(cmd.args[1])
		if err != nil {
			return nil, err
		}
		return msg(stats), nil
	}

	opts := &tp.GameOptions{Red: tp.KindEngine, Blue: tp.KindRandom}
	games := sc.config.GetInt(config.ConfigAutoplayGames)
	threads := sc.config.GetInt(config.ConfigAutoplayThreads)
	outFile := filepath.Join(sc.config.GetString(config.ConfigDataPath), "autoplay.csv")
	for k, v := range cmd.options {
		var err error
		switch k {
		case "games":
			games, err = strconv.Atoi(v)
		case "threads":
			threads, err = strconv.Atoi(v)
		case "red", "blue":
			err = opts.SetPlayer(k, v)
		case "first":
			err = opts.SetFirst(v)
		case "depth":
			opts.Depth, err = strconv.Atoi(v)
		case "file":
			outFile = v
		default:
			err = fmt.Errorf("unknown option -%v", k)
		}
		if err != nil {
			return nil, err
		}
	}
	opts.SetDefaults(sc.config)
	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return nil, err
	}
	sc.showMessage(fmt.Sprintf("playing %d games, %v vs %v, into %v", games, opts.Red, opts.Blue, outFile))
	if err := automatic.StartCompVComp(context.Background(), sc.config, opts, games, threads, outFile); err != nil {
		return nil, err
	}
	stats, err := automatic.AnalyzeLogFile(outFile)
	if err != nil {
		return nil, err
	}
	return msg(stats), nil
}
