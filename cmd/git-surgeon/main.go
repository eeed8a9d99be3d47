// Command git-surgeon manipulates a git repository at the granularity
// of individual diff hunks, and the individual lines within them.
package main

import (
	"github.com/roasbeef/git-surgeon/commands"
)

func main() {
	commands.Execute()
}
