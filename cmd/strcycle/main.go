//strcycle runs cycles of the string method, as described by a YAML configuration file.
//
//The string for cycle c-1 (string_<c-1>.dat, or string_<c-1>.dat.zst) must exist in the
//working directory. Swarms are read from files, or obtained by running a command, depending
//on the configuration. The new string is written to string_<c>.dat.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmera/swarms/cycle"
)

var (
	configFile = flag.String("config", "strcycle.yaml", "Path to configuration file")
	first      = flag.Int("cycle", 1, "Cycle to run")
	ncycles    = flag.Int("n", 1, "Number of consecutive cycles to run")
	writeConf  = flag.String("write-config", "", "Write the configuration, with defaults filled in, to this file and exit")
	quiet      = flag.Bool("q", false, "Don't print progress messages")
)

func main() {
	flag.Parse()
	conf, err := cycle.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *writeConf != "" {
		if err := cycle.SaveConfig(*writeConf, conf); err != nil {
			log.Fatal(err)
		}
		return
	}
	orch, err := cycle.New(conf)
	if err != nil {
		log.Fatal(err)
	}
	if *quiet {
		orch.Log = log.New(io.Discard, "", 0)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	for c := *first; c < *first+*ncycles; c++ {
		res, err := orch.Run(ctx, c)
		if err != nil {
			stop()
			log.Fatalf("cycle %d failed: %v", c, err)
		}
		if len(res.Knots) > 0 {
			log.Printf("cycle %d: %d images were out of place", c, len(res.Knots))
		}
	}
}
