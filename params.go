package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/routecontract/route-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL      string
	routesFile      string
	filters         framework.RegexFilters
	closeAfterGroup bool
	awaitTimeout    time.Duration
	debug           bool
	debugAll        bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the service under test")
	fs.StringVar(&c.routesFile, "routes", "", "YAML file describing the routes to test")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.closeAfterGroup, "close-after-group", false, "close the server connection pool after each route")
	fs.DurationVar(&c.awaitTimeout, "await-timeout", defaultAwaitTimeout, "how long to wait for the service to respond before starting")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	if c.routesFile == "" {
		fmt.Fprintln(os.Stderr, "-routes is required")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand builds a command line that runs only the top-level groups that had failures.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program, "-url", c.serviceURL, "-routes", c.routesFile)
	seen := make(map[string]bool)
	for _, f := range failures {
		if len(f.TestID.Path) == 0 || seen[f.TestID.Path[0]] {
			continue
		}
		seen[f.TestID.Path[0]] = true
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.Path[0])+"(/|$)")
	}
	for _, p := range c.filters.MustNotMatch.Patterns() {
		b.add("-skip", p)
	}
	if c.closeAfterGroup {
		b.add("-close-after-group")
	}
	if c.debug {
		b.add("-debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
