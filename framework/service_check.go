package framework

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

const serviceRetryInterval = time.Millisecond * 100

// AwaitService polls a service URL until it answers with any HTTP response, so that a test run
// against an external server does not start before the server is listening.
//
// Any status code counts as an answer, since the root path of the service under test is not
// required to exist.
func AwaitService(client *http.Client, url string, timeout time.Duration, logger Logger) error {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = NullLogger()
	}
	logger.Printf("Connecting to service at %s", url)

	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		resp, err := client.Get(url)
		if err == nil {
			if resp.Body != nil {
				_, _ = io.Copy(ioutil.Discard, resp.Body)
				_ = resp.Body.Close()
			}
			logger.Printf("Service responded with status %d", resp.StatusCode)
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("timed out after %d attempts, result of last query was: %w", attempt, err)
		}
		logger.Printf("Service not available yet (%s)", err)
		time.Sleep(serviceRetryInterval)
	}
}
