package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/simplefilehost/internal/admin"
	"github.com/dmitrijs2005/simplefilehost/internal/flagx"
	"github.com/dmitrijs2005/simplefilehost/internal/server/config"
)

func main() {
	os.Exit(run())
}

func run() int {

	ctx := context.Background()
	cfg := config.LoadConfig()

	var passwordStdin bool
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.BoolVar(&passwordStdin, "password-stdin", false, "read the password as one line from stdin")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-password-stdin", "--password-stdin"}))

	args := flagx.Positionals(os.Args[1:], config.ValueFlags)

	app, err := admin.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer app.Close()

	app.PasswordStdin = passwordStdin

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
