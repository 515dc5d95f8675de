package framework

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitServiceAcceptsAnyStatus(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(404))
	defer server.Close()

	var logger CapturingLogger
	require.NoError(t, AwaitService(nil, server.URL, time.Second, &logger))

	output := logger.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "Connecting to service at "+server.URL, output[0].Message)
	assert.Equal(t, "Service responded with status 404", output[1].Message)
}

func TestAwaitServiceTimesOut(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	err := AwaitService(nil, url, time.Millisecond*250, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out after")
}
