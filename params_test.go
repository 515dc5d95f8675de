package main

import (
	"errors"
	"testing"

	"github.com/routecontract/route-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	var p commandParams
	ok := p.Read([]string{"route-contract-tests", "-url", "http://localhost:8000", "-routes", "routes.yaml",
		"-skip", "slow", "-close-after-group"})
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8000", p.serviceURL)
	assert.Equal(t, "routes.yaml", p.routesFile)
	assert.Equal(t, []string{"slow"}, p.filters.MustNotMatch.Patterns())
	assert.True(t, p.closeAfterGroup)
	assert.Equal(t, defaultAwaitTimeout, p.awaitTimeout)
}

func TestRerunCommand(t *testing.T) {
	var p commandParams
	p.serviceURL = "http://localhost:8000"
	p.routesFile = "my routes.yaml"
	require.NoError(t, p.filters.MustNotMatch.Set("slow"))
	p.debug = true

	failures := []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"GET /a", "returns 200"}}, Errors: []error{errors.New("x")}},
		{TestID: framework.TestID{Path: []string{"GET /a"}}},
		{TestID: framework.TestID{Path: []string{"errors", "GET /b", "returns 400"}}},
	}

	assert.Equal(t,
		`route-contract-tests -url http://localhost:8000 -routes 'my routes.yaml'`+
			` -run '^GET /a(/|$)' -run '^errors(/|$)' -skip slow -debug`,
		p.rerunCommand("route-contract-tests", failures))
}
