// Package shell is an interactive front end to the engine: set up a game,
// play against the engine, look at what it is thinking, and run self-play
// batches.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hexengine/ai/player"
	aitp "github.com/domino14/hexengine/ai/turnplayer"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/memory"
	tp "github.com/domino14/hexengine/turnplayer"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game yet; use new")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	config   *config.Config
	execPath string

	options *tp.GameOptions
	game    *tp.BaseTurnPlayer
	players map[board.Side]aitp.AITurnPlayer
	// engines for sides nobody plays by machine, kept for gen/eval/...
	analysts  map[board.Side]*player.HexPlayer
	searchLog *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func newController(cfg *config.Config, execPath string, out io.Writer) *ShellController {
	opts := &tp.GameOptions{}
	opts.SetDefaults(cfg)
	return &ShellController{
		out:      out,
		config:   cfg,
		execPath: execPath,
		options:  opts,
		players:  map[board.Side]aitp.AITurnPlayer{},
		analysts: map[board.Side]*player.HexPlayer{},
	}
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := newController(cfg, execPath, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34mhex>\033[0m ",
		HistoryFile:     "/tmp/hexengine-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) IsPlaying() bool {
	return sc.game != nil && sc.game.IsPlaying()
}

// attachSearchLog points the engine's search log at the configured file,
// opening it on first use.
func (sc *ShellController) attachSearchLog(p *player.HexPlayer) {
	path := sc.config.GetString(config.ConfigSearchLogPath)
	if path == "" {
		return
	}
	if sc.searchLog == nil {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Err(err).Str("path", path).Msg("search-log-open")
			return
		}
		sc.searchLog = f
	}
	p.Solver().SetLogStream(sc.searchLog)
}

// engineFor returns the engine that knows about side in the current game,
// with its memory brought up to the current position.
func (sc *ShellController) engineFor(side board.Side) (*player.HexPlayer, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	p, ok := sc.players[side].(*player.HexPlayer)
	if !ok {
		p, ok = sc.analysts[side]
		if !ok {
			p = player.NewHexPlayer(side, sc.config)
			p.SetDepth(sc.options.Depth)
			sc.attachSearchLog(p)
			p.Sync(sc.game.Game)
			sc.analysts[side] = p
		}
	}
	if _, err := p.Memory().Update(sc.game.Game); err != nil {
		log.Debug().Err(err).Str("side", side.String()).Msg("engine-memory-rebuilt")
		p.Sync(sc.game.Game)
	}
	return p, nil
}

func (sc *ShellController) memoryFor(args []string) (*memory.Memory, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	side := sc.game.PlayerOnTurn()
	if len(args) > 0 {
		var err error
		if side, err = board.SideFromString(args[0]); err != nil {
			return nil, err
		}
	}
	p, err := sc.engineFor(side)
	if err != nil {
		return nil, err
	}
	return p.Memory(), nil
}

// syncAll is needed whenever the game moves other than by a played turn.
func (sc *ShellController) syncAll() {
	for _, p := range sc.players {
		p.Sync(sc.game.Game)
	}
	for _, p := range sc.analysts {
		p.Sync(sc.game.Game)
	}
}

// runAITurns lets the machine sides move until a human is on turn or the
// game is over.
func (sc *ShellController) runAITurns() (string, error) {
	var out strings.Builder
	for sc.IsPlaying() {
		p, ok := sc.players[sc.game.PlayerOnTurn()]
		if !ok {
			break
		}
		r := p.ComputeMove(sc.game.Game)
		if err := sc.game.Play(r.Move); err != nil {
			return out.String(), fmt.Errorf("%v played %v: %w", p.Side(), r.Move.ShortDescription(), err)
		}
		fmt.Fprintf(&out, "%v plays %v (%.4f)\n", p.Side(), r.Move.ShortDescription(), r.Score)
		if r.Fallback {
			fmt.Fprintf(&out, "  fallback move: %v\n", r.Err)
		}
	}
	return out.String(), nil
}

func (sc *ShellController) handle(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help", "h":
		return sc.help(cmd)
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s", "b":
		return sc.show(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "gen", "g":
		return sc.generate(cmd)
	case "aiplay", "ai":
		return sc.aiplay(cmd)
	case "attention", "att":
		return sc.attention(cmd)
	case "structures", "st":
		return sc.structures(cmd)
	case "eval", "e":
		return sc.eval(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	default:
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}

// executeLine runs one command line and returns what it would print.
func (sc *ShellController) executeLine(line string) (string, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return "", err
	}
	resp, err := sc.handle(cmd)
	if err != nil || resp == nil {
		return "", err
	}
	return resp.message, nil
}

// Execute runs a single command line given on the process command line
// and prints its output. The error is printed too, and returned.
func (sc *ShellController) Execute(line string) error {
	out, err := sc.executeLine(line)
	if err != nil {
		sc.showError(err)
		return err
	}
	if out != "" {
		sc.showMessage(out)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		if line == "" {
			continue
		}
		out, err := sc.executeLine(line)
		if err != nil {
			sc.showError(err)
		} else if out != "" {
			sc.showMessage(out)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	if sc.searchLog != nil {
		if err := sc.searchLog.Close(); err != nil {
			log.Err(err).Msg("search-log-close")
		}
	}
}
