package routetests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/routecontract/route-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const maxLoggedBodyLength = 1000

// Execute sends the request for a resolved route and captures the response. It does not
// retry; any transport error is returned.
//
// The request headers are built from, in increasing order of precedence: envAuthorization as
// an Authorization header, an Authorization header from route.Bearer if route.Headers does
// not have one, and route.Headers.
//
// An Expect or RawExpect value that refers back to itself is a *ConfigError, returned before
// anything is sent.
func Execute(
	ctx context.Context,
	server Server,
	route *ResolvedRoute,
	envAuthorization string,
	logger framework.Logger,
) (*Response, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if err := checkExpectation("expect", route.Expect); err != nil {
		return nil, err
	}
	if err := checkExpectation("raw expect", route.RawExpect); err != nil {
		return nil, err
	}
	url := server.BaseURL() + route.FullPath()

	var body io.Reader
	var bodyData []byte
	if hasRequestBody(route.Method) {
		data, err := json.Marshal(route.RequestBody())
		if err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
		bodyData = data
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header = requestHeaders(route, envAuthorization, bodyData != nil)

	if bodyData != nil {
		logger.Printf("Sending %s %s with body: %s", route.Method, url, truncate(string(bodyData)))
	} else {
		logger.Printf("Sending %s %s", route.Method, url)
	}
	resp, err := server.Client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body from %s: %w", url, err)
	}
	logger.Printf("Received status %d: %s", resp.StatusCode, truncate(string(data)))

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   parseBody(data),
		Text:   string(data),
		Request: RequestInfo{
			Method: route.Method,
			URL:    url,
			Path:   route.FullPath(),
			Header: req.Header.Clone(),
			Body:   bodyData,
		},
	}, nil
}

func hasRequestBody(method string) bool {
	return method != "GET" && method != "DELETE"
}

func requestHeaders(route *ResolvedRoute, envAuthorization string, hasBody bool) http.Header {
	h := make(http.Header)
	if envAuthorization != "" {
		h.Set("Authorization", envAuthorization)
	}
	if hasBody {
		h.Set("Content-Type", "application/json")
	}
	if route.Bearer != "" {
		if _, ok := route.Header("Authorization"); !ok {
			h.Set("Authorization", "Bearer "+route.Bearer)
		}
	}
	for k, v := range route.Headers {
		h.Set(k, v)
	}
	return h
}

// parseBody returns the JSON value of a response body, or an empty object if it is not JSON.
func parseBody(data []byte) ldvalue.Value {
	if len(bytes.TrimSpace(data)) > 0 && json.Valid(data) {
		return ldvalue.Parse(data)
	}
	return ldvalue.ObjectBuild().Build()
}

func truncate(s string) string {
	if len(s) > maxLoggedBodyLength {
		return s[:maxLoggedBodyLength] + "..."
	}
	return s
}
