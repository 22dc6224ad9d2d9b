package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/service"
)

// shell reads one command per line and renders each outcome.
type shell struct {
	svc    *service.StudentService
	out    io.Writer
	log    zerolog.Logger
	prompt bool

	// ctx is the context of the current run; go-flags commands take none.
	ctx  context.Context
	done bool
}

func newShell(svc *service.StudentService, out io.Writer, log zerolog.Logger) *shell {
	return &shell{svc: svc, out: out, log: log, ctx: context.Background()}
}

// run shows the current rows, then executes lines from in until EOF or quit.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	sh.ctx = ctx
	sh.render(sh.svc.Refresh(ctx))

	sc := bufio.NewScanner(in)
	for !sh.done {
		if sh.prompt {
			fmt.Fprint(sh.out, "roster> ")
		}
		if !sc.Scan() {
			break
		}
		sh.exec(sc.Text())
	}
	return sc.Err()
}

// exec runs a single command line. Blank lines and # comments are ignored.
func (sh *shell) exec(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	args, err := splitLine(line)
	if err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
		return
	}

	if _, err := newCommandParser(sh).ParseArgs(joinNegativeValues(args)); err != nil {
		fmt.Fprintln(sh.out, err)
	}
}

// joinNegativeValues rewrites "--flag -5" as "--flag=-5". go-flags reads a
// leading dash as an option name, which would keep negative ids and grades
// from reaching the validator.
func joinNegativeValues(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--") && len(a) > 2 && !strings.Contains(a, "=") &&
			i+1 < len(args) && looksNegative(args[i+1]) {
			out = append(out, a+"="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

func looksNegative(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	c := s[1]
	return (c >= '0' && c <= '9') || c == '.'
}

// splitLine breaks line into words. Single or double quotes group words
// containing spaces; "" is an empty word.
func splitLine(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		inArg bool
		quote rune
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inArg = r, true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
