package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lox/pokerdrill/internal/scenario"
)

var errQuit = errors.New("quit")

var actionAliases = map[string]scenario.ActionType{
	"f":      scenario.Fold,
	"fold":   scenario.Fold,
	"x":      scenario.Check,
	"k":      scenario.Check,
	"check":  scenario.Check,
	"c":      scenario.Call,
	"call":   scenario.Call,
	"b":      scenario.Bet,
	"bet":    scenario.Bet,
	"r":      scenario.Raise,
	"raise":  scenario.Raise,
	"a":      scenario.AllIn,
	"allin":  scenario.AllIn,
	"all_in": scenario.AllIn,
	"all-in": scenario.AllIn,
	"jam":    scenario.AllIn,
	"shove":  scenario.AllIn,
}

// parseChoice reads an answer such as "raise 8", "r 8", "2" or "fold".
// A leading number picks from legal by position. BET and RAISE need a size
// when needSize is set.
func parseChoice(line string, legal []scenario.ActionType, needSize bool) (scenario.ActionType, *float64, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return "", nil, errors.New("enter an action")
	}
	if fields[0] == "q" || fields[0] == "quit" {
		return "", nil, errQuit
	}

	var action scenario.ActionType
	if n, err := strconv.Atoi(fields[0]); err == nil {
		if n < 1 || n > len(legal) {
			return "", nil, fmt.Errorf("choose 1-%d", len(legal))
		}
		action = legal[n-1]
	} else if a, ok := actionAliases[fields[0]]; ok {
		action = a
	} else {
		return "", nil, fmt.Errorf("unknown action %q", fields[0])
	}
	if !slices.Contains(legal, action) {
		return "", nil, fmt.Errorf("%s is not available here", action)
	}

	if !action.Sized() {
		return action, nil, nil
	}
	if len(fields) < 2 {
		if needSize {
			return "", nil, fmt.Errorf("%s needs a size, e.g. %q", action, strings.ToLower(string(action))+" 8")
		}
		return action, nil, nil
	}
	size, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "bb"), 64)
	if err != nil || size <= 0 {
		return "", nil, fmt.Errorf("invalid size %q", fields[1])
	}
	return action, &size, nil
}

// asker prompts until it gets a valid answer.
type asker struct {
	rl  *readline.Instance
	out io.Writer
}

// newAsker reads answers from in. Line editing and tab completion are
// only enabled when in and out are a terminal.
func newAsker(in io.Reader, out io.Writer) (*asker, error) {
	interactive := isTerminal(in) && isTerminal(out)

	completer := readline.NewPrefixCompleter(readline.PcItem("quit"))
	for _, name := range []string{"fold", "check", "call", "bet", "raise", "allin"} {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	cfg := &readline.Config{
		Prompt:          promptStyle.Render("> "),
		HistoryLimit:    100,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          out,
		Stderr:          out,
		FuncIsTerminal:  func() bool { return interactive },
	}
	if !interactive {
		cfg.Stdin = io.NopCloser(in)
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("open prompt: %w", err)
	}
	return &asker{rl: rl, out: out}, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}

func (a *asker) ask(legal []scenario.ActionType, needSize bool) (scenario.ActionType, *float64, error) {
	for {
		line, err := a.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(a.out, infoStyle.Render("Use 'quit' to exit"))
			continue
		case errors.Is(err, io.EOF):
			return "", nil, errQuit
		case err != nil:
			return "", nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		action, size, err := parseChoice(line, legal, needSize)
		if errors.Is(err, errQuit) {
			return "", nil, err
		}
		if err != nil {
			fmt.Fprintln(a.out, wrongStyle.Render(err.Error()))
			continue
		}
		return action, size, nil
	}
}

func (a *asker) Close() error {
	return a.rl.Close()
}
