package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/nomis52/mergington/buildinfo"
	"github.com/nomis52/mergington/client"
	"github.com/nomis52/mergington/registry"
	serverconfig "github.com/nomis52/mergington/server/config"
)

type Args struct {
	ServerURL   string
	ShowVersion bool
	JSON        bool
	Command     string
	CommandArgs []string
}

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	args := parseArgs()

	if args.ShowVersion {
		showVersion(out)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(args.ServerURL)

	switch args.Command {
	case "list":
		return list(ctx, out, c, args.JSON)
	case "signup":
		if len(args.CommandArgs) != 2 {
			return fmt.Errorf("usage: signup <activity> <email>")
		}
		msg, err := c.Signup(ctx, args.CommandArgs[0], args.CommandArgs[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil
	case "unregister":
		if len(args.CommandArgs) != 2 {
			return fmt.Errorf("usage: unregister <activity> <email>")
		}
		msg, err := c.Unregister(ctx, args.CommandArgs[0], args.CommandArgs[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil
	case "validate":
		return validate(out, args.CommandArgs)
	case "":
		flag.Usage()
		return fmt.Errorf("a command is required")
	default:
		return fmt.Errorf("unknown command %q", args.Command)
	}
}

func list(ctx context.Context, out io.Writer, c *client.Client, asJSON bool) error {
	activities, err := c.List(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(activities)
	}
	for _, name := range slices.Sorted(maps.Keys(activities)) {
		a := activities[name]
		fmt.Fprintf(out, "%s (%d/%d, %d left)\n", name, len(a.Participants), a.MaxParticipants, a.SpotsLeft())
		fmt.Fprintf(out, "  %s\n", a.Schedule)
		for _, p := range a.Participants {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}
	return nil
}

// validate checks server config and seed files without starting anything.
// Files are told apart by the flag preceding them: -config or -seed.
func validate(out io.Writer, argv []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	configPath := fs.String("config", "", "Server config file to validate")
	seedPath := fs.String("seed", "", "Activity seed file to validate")
	if err := fs.Parse(argv); err != nil {
		return err
	}
	if *configPath == "" && *seedPath == "" {
		return fmt.Errorf("validate needs -config and/or -seed")
	}

	if *configPath != "" {
		cfg, err := serverconfig.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Configuration validation successful: %s\n", *configPath)
		if *seedPath == "" {
			*seedPath = cfg.SeedFile
		}
	}

	if *seedPath != "" {
		seed, err := registry.LoadSeed(*seedPath)
		if err != nil {
			return err
		}
		if _, err := registry.New(seed); err != nil {
			return err
		}
		fmt.Fprintf(out, "Seed validation successful: %s (%d activities)\n", *seedPath, len(seed))
	}
	return nil
}

func showVersion(out io.Writer) {
	props := buildinfo.Get()
	fmt.Fprintf(out, "mergington %s\n", props.Version)
	fmt.Fprintf(out, "Built: %s\n", props.BuildTime)
	fmt.Fprintf(out, "Commit: %s\n", props.GitCommit)
}

func parseArgs() Args {
	serverURL := flag.String("server", "http://localhost:8080", "Base URL of the activities server")
	showVersion := flag.Bool("version", false, "Show version information")
	versionShort := flag.Bool("v", false, "Show version information (shorthand)")
	asJSON := flag.Bool("json", false, "Print list output as JSON")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMergington High School activities client\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list                          List activities and participants\n")
		fmt.Fprintf(os.Stderr, "  signup <activity> <email>     Sign a student up\n")
		fmt.Fprintf(os.Stderr, "  unregister <activity> <email> Remove a participant\n")
		fmt.Fprintf(os.Stderr, "  validate [-config f] [-seed f] Validate config and seed files\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s list\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -server http://school:8080 signup \"Chess Club\" ada@mergington.edu\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s validate -config server.yaml\n", os.Args[0])
	}

	flag.Parse()

	args := Args{
		ServerURL:   *serverURL,
		ShowVersion: *showVersion || *versionShort,
		JSON:        *asJSON,
	}
	if flag.NArg() > 0 {
		args.Command = flag.Arg(0)
		args.CommandArgs = flag.Args()[1:]
	}
	return args
}
