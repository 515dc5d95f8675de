package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/routecontract/route-contract-tests/framework"
	"github.com/routecontract/route-contract-tests/framework/suite"
	"github.com/routecontract/route-contract-tests/routefile"
	"github.com/routecontract/route-contract-tests/routetests"
)

const defaultAwaitTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	file, err := routefile.Load(params.routesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load routes: %s\n", err)
		os.Exit(1)
	}

	setupLogger := framework.WriterLogger(os.Stdout, "")
	if err := framework.AwaitService(nil, params.serviceURL, params.awaitTimeout, setupLogger); err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	options := routetests.OptionsFromEnv()
	if params.closeAfterGroup {
		options.CloseServerAfterGroup = true
	}
	api := routetests.New(options)
	root := suite.NewGroup("")
	server := routetests.URLServer(params.serviceURL, nil)
	if err := file.Declare(api.Scope(root), routetests.WithServer(server)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid routes: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running route tests")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := suite.Run(root, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed routes again:")
		fmt.Printf("  %s\n", params.rerunCommand(filepath.Base(os.Args[0]), results.Failures))
		os.Exit(1)
	}
}
