package main

import (
	"flag"
	"fmt"
	"os"
	"roster/internal/config"

	"github.com/sirupsen/logrus"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	configPath := flag.String("config", "", "path to a configuration file (yaml, json, toml)")
	flag.Parse()

	switch flag.Arg(0) {
	case "version":
		fmt.Fprintf(os.Stdout, "Roster %s\n", Version)
	case "serve":
		run(*configPath, serve)
	case "migrate":
		run(*configPath, migrateUp)
	case "dev:fixtures":
		run(*configPath, loadFixtures)
	case "help":
		fmt.Fprint(os.Stdout, help())
		return
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}
}

func run(configPath string, cmd func(*config.Config) error) {
	conf, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	conf.SetupLogger()

	if err := cmd(conf); err != nil {
		logrus.Fatal(err)
	}
}

func help() string {
	return fmt.Sprintf(`
Roster is a catalog service for game characters.

Usage: %[1]s [-config FILE] COMMAND

COMMANDS
    dev:fixtures create a few players for quick testing during development
    help         display this help
    migrate      apply pending schema migrations to the sqlite database
    serve        start the HTTP API
    version      display the current version

Configuration is read from FILE then from ROSTER_* environment variables,
eg. ROSTER_STORAGE_DSN=./roster.db or ROSTER_STORAGE_DRIVER=memory.
`,
		os.Args[0],
	)
}
