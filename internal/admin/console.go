package admin

import (
	"context"
	"fmt"
	"strings"
)

const consoleHelp = `Available commands:
  help                                  show this help
  createUser <id> <username> <password> create a user
  exit | quit                           leave the console`

// Console runs the interactive loop until EOF, exit or quit. A failed
// command is logged and the loop continues.
func (a *App) Console(ctx context.Context) {
	fmt.Fprintln(a.out, "Type 'help' for a list of commands.")

	for {
		fmt.Fprint(a.out, "admin> ")

		line, err := ReadLine(a.reader)
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "help":
			fmt.Fprintln(a.out, consoleHelp)

		case "createuser":
			if len(parts) != 4 {
				fmt.Fprintln(a.out, "Usage: createUser <id> <username> <password>")
				continue
			}
			_ = a.register(ctx, parts[1], parts[2], parts[3])

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}
