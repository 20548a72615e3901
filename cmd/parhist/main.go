// Command parhist computes histograms of sample sequences in parallel.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/parhist/core/logging"
	"github.com/usnistgov/parhist/core/version"
)

var app = &cli.App{
	Version: version.V.String(),
	Usage:   "Parallel histogram computation and benchmark.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log `level` of every package: D, I, W, E, N",
		},
	},
	Before: func(c *cli.Context) error {
		if c.IsSet("log-level") {
			logging.SetLevel("", c.String("log-level"))
		}
		return nil
	},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func printJSON(w io.Writer, value any) error {
	j, e := json.Marshal(value)
	if e != nil {
		return e
	}
	_, e = fmt.Fprintln(w, string(j))
	return e
}

func main() {
	sort.Sort(cli.CommandsByName(app.Commands))
	e := app.Run(os.Args)
	logging.Sync()
	if e != nil {
		log.Fatal(e)
	}
}
