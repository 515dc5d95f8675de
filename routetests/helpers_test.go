package routetests

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/routecontract/route-contract-tests/framework"
	"github.com/routecontract/route-contract-tests/framework/suite"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ironMessage = "You left the iron on"

// testService is an in-process HTTP service with a few fixed endpoints, which counts the
// requests it receives.
type testService struct {
	hits    int32
	handler http.Handler
}

func newTestService() *testService {
	s := &testService{}
	mux := http.NewServeMux()
	jsonHeaders := http.Header{"Content-Type": []string{"application/json"}}
	mux.Handle("/", httphelpers.HandlerWithResponse(200, jsonHeaders, []byte(`{"hello":"world"}`)))
	mux.Handle("/error", httphelpers.HandlerWithResponse(400, jsonHeaders,
		[]byte(`{"error":"`+ironMessage+`"}`)))
	mux.Handle("/text-error", httphelpers.HandlerWithResponse(500, nil, []byte(ironMessage)))
	mux.Handle("/text", httphelpers.HandlerWithResponse(200, nil, []byte("plain words")))
	mux.Handle("/items", httphelpers.HandlerWithResponse(200, jsonHeaders,
		[]byte(`{"data":[{"id":1,"name":"kettle","tags":["a","b"]},{"id":2,"name":"iron"}]}`)))
	mux.HandleFunc("/reflect/body", func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		if len(body) == 0 {
			body = []byte(`{}`)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	mux.HandleFunc("/reflect/headers", func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string)
		for k := range r.Header {
			headers[strings.ToLower(k)] = r.Header.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(headers)
	})
	mux.HandleFunc("/reflect/request", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"method": r.Method, "path": r.URL.Path},
		})
	})
	s.handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.hits, 1)
		mux.ServeHTTP(w, r)
	})
	return s
}

func (s *testService) server() Server {
	return HandlerServer(s.handler)
}

func (s *testService) hitCount() int {
	return int(atomic.LoadInt32(&s.hits))
}

// declareAndRun declares routes against a new test service in a fresh suite and runs it.
func declareAndRun(t *testing.T, options Options, opts ...Option) (framework.Results, *testService) {
	service := newTestService()
	root := suite.NewGroup("")
	api := New(options)
	require.NoError(t, api.Describe(root, append([]Option{WithServer(service.server())}, opts...)...))
	return suite.Run(root, nil, nil), service
}

func caseNames(results framework.Results) []string {
	var ret []string
	for _, r := range results.Tests {
		if len(r.TestID.Path) > 1 {
			ret = append(ret, r.TestID.String())
		}
	}
	return ret
}

func requireFailureContaining(t *testing.T, results framework.Results, text string, path ...string) {
	t.Helper()
	r, ok := results.Find(path...)
	require.True(t, ok, "no result for %v", path)
	require.True(t, results.Failed(path...), "expected %v to fail", path)
	var messages []string
	for _, e := range r.Errors {
		messages = append(messages, e.Error())
	}
	assert.Contains(t, strings.Join(messages, "\n"), text)
}
