package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-first", "-red", "-blue", "-depth"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-red", "-blue", "-first", "-depth", "-file"},
		Args:    []string{"analyze"},
	},
	"set": {
		Args: []string{
			"first", "red", "blue", "depth", "branching-factor",
			"local-branching-factor", "local-depth", "search-log-path",
			"heuristic.alpha", "heuristic.beta-me", "heuristic.beta-adv",
			"heuristic.gamma", "heuristic.delta", "heuristic.epsilon",
			"heuristic.zeta",
		},
	},
	"attention":  {Args: sideValues},
	"structures": {Args: sideValues},
	"eval":       {Args: sideValues},
	"help":       {Args: []string{"set", "autoplay", "script"}},
}

var commandNames = []string{
	"help", "new", "show", "play", "undo", "gen", "aiplay", "attention",
	"structures", "eval", "set", "autoplay", "script", "exit",
}

var sideValues = []string{"red", "blue"}
var kindValues = []string{"engine", "random", "human"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch strings.TrimPrefix(lastCompleteField, "-") {
		case "first":
			completions = sideValues
		case "red", "blue":
			completions = kindValues
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
