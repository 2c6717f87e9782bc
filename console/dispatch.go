package console

// splitArgs splits line on single-space delimiters into at most max tokens.
// Runs of consecutive spaces collapse; no empty tokens are produced. Text
// beyond the last allowed token is discarded.
func splitArgs(line string, max int) []string {
	var args []string
	start := -1
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			args = append(args, line[start:i])
			start = -1
			if len(args) == max {
				return args
			}
		}
	}
	if start >= 0 {
		args = append(args, line[start:])
	}
	return args
}

// dispatch tokenizes a submitted line and invokes the matching handler, or
// reports an unknown command. The session continues either way.
func (c *Console) dispatch(line string) {
	args := splitArgs(line, c.maxArgs)
	if len(args) == 0 {
		return
	}
	cmd, ok := c.table.Lookup(args[0])
	if !ok {
		c.stats.Unknown++
		c.emit("Unknown command: " + args[0] + "\r\nType 'help' for available commands.\r\n")
		return
	}
	c.stats.Dispatched++
	if cmd.Handler != nil {
		cmd.Handler(&Context{console: c}, args)
	}
}
