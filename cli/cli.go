// Package cli provides terminal I/O and command dispatch for the
// HanziQuest engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/hanziquest/engine"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *Session
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, saveDir string) *CLI {
	return &CLI{
		Session: NewSession(eng, saveDir),
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run starts the game loop: prompt → input → dispatch → output.
func (c *CLI) Run() {
	pack := c.Session.Engine.Defs.Pack
	c.printLine(fmt.Sprintf("%s v%s", pack.Name, pack.Version))
	c.printLine("Type 'help' for commands.")
	c.printLine("")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		lines, quit := c.Session.Exec(input)
		for _, line := range lines {
			c.printLine(line)
		}
		if quit {
			return
		}
	}
}

func (c *CLI) print(s string) {
	fmt.Fprint(c.Out, s)
}

func (c *CLI) printLine(s string) {
	fmt.Fprintln(c.Out, s)
}
