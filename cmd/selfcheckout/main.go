package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/duernstein/selfcheckout/cmd/selfcheckout/kiosk"
	"github.com/duernstein/selfcheckout/cmd/selfcheckout/qr"
	"github.com/duernstein/selfcheckout/cmd/selfcheckout/subcmd"
	"github.com/duernstein/selfcheckout/cmd/selfcheckout/uidev"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/juju/errors"
)

var BuildVersion string = "unknown" // set by ldflags -X
var log = log2.NewStderr(log2.LDebug)
var modules = []subcmd.Mod{
	kiosk.Mod,
	uidev.Mod,
	qr.Mod,
}

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagConfig := flags.String("config", "selfcheckout.hcl", "")
	flagLogLevel := flags.String("log-level", "debug", "error|info|debug|all")
	flagVersion := flags.Bool("version", false, "print build version and exit")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: %s [option...] command\n\nOptions:\n", os.Args[0])
		flags.PrintDefaults()
		cmds := make([]string, len(modules))
		for i, m := range modules {
			cmds[i] = m.Name
		}
		fmt.Fprintf(flags.Output(), "\nCommands: %s\n", strings.Join(cmds, " "))
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatal(err)
	}

	if *flagVersion {
		fmt.Printf("selfcheckout %s\n", BuildVersion)
		return
	}

	level, err := log2.ParseLevel(*flagLogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	mod, err := subcmd.Parse(flags.Arg(0), modules)
	if err != nil {
		flags.Usage()
		log.Fatal(err)
	}

	if subcmd.SdNotify("start") {
		// under systemd assume journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	log.Infof("selfcheckout version=%s starting", BuildVersion)

	ctx, g := state.NewContext(log, new(tele.Tele))
	g.BuildVersion = BuildVersion
	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)

	if err := mod.Main(ctx, config); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}
