package routetests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/routecontract/route-contract-tests/framework/suite"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

// inProcessBaseURL is the base URL for servers that are called without any network activity.
const inProcessBaseURL = "http://localhost"

// Server is a running HTTP server that routes are sent to. The same Server is shared, without
// being modified, by every route declared in its scope.
type Server interface {
	// BaseURL is the scheme and host, and optionally a base path, that route paths are
	// appended to.
	BaseURL() string

	// Client returns the HTTP client to send requests with.
	Client() *http.Client

	// Close stops the server, if it is owned by the tests. Calling it more than once has no
	// further effect.
	Close()
}

type urlServer struct {
	baseURL string
	client  *http.Client
}

// URLServer returns a Server for an already running service. If client is nil,
// http.DefaultClient is used. The service itself is not owned by the tests, so Close only
// closes the client's idle connections.
func URLServer(baseURL string, client *http.Client) Server {
	if client == nil {
		client = http.DefaultClient
	}
	return &urlServer{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

func (s *urlServer) BaseURL() string      { return s.baseURL }
func (s *urlServer) Client() *http.Client { return s.client }
func (s *urlServer) Close()               { s.client.CloseIdleConnections() }

// HandlerServer returns a Server that calls handler directly, without opening a port.
func HandlerServer(handler http.Handler) Server {
	return &urlServer{baseURL: inProcessBaseURL, client: httphelpers.ClientFromHandler(handler)}
}

type testServer struct {
	server    *httptest.Server
	closeOnce sync.Once
}

// TestServer returns a Server for an httptest.Server. Close closes the httptest.Server.
func TestServer(server *httptest.Server) Server {
	return &testServer{server: server}
}

func (s *testServer) BaseURL() string      { return s.server.URL }
func (s *testServer) Client() *http.Client { return s.server.Client() }
func (s *testServer) Close() {
	s.closeOnce.Do(s.server.Close)
}

// Autorun returns an accessor for a server running handler. The server is started on the
// first call and the same server is returned by later calls. It is closed once, after every
// group and test case in root has finished.
//
// Closing the returned server earlier, as Options.CloseServerAfterGroup does, makes the next
// call start a new one. The accessor is intended for WithServerFunc.
func Autorun(root *suite.Group, handler http.Handler) func() Server {
	a := &autorun{handler: handler}
	root.AfterAll(func(*suite.T) error {
		a.lock.Lock()
		s := a.current
		a.current = nil
		a.lock.Unlock()
		if s != nil {
			s.server.Close()
		}
		return nil
	})
	return a.get
}

type autorun struct {
	handler http.Handler
	current *autorunServer
	lock    sync.Mutex
}

type autorunServer struct {
	server Server
	owner  *autorun
}

func (a *autorun) get() Server {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.current == nil {
		a.current = &autorunServer{server: TestServer(httptest.NewServer(a.handler)), owner: a}
	}
	return a.current
}

func (s *autorunServer) BaseURL() string      { return s.server.BaseURL() }
func (s *autorunServer) Client() *http.Client { return s.server.Client() }
func (s *autorunServer) Close() {
	s.owner.lock.Lock()
	if s.owner.current == s {
		s.owner.current = nil
	}
	s.owner.lock.Unlock()
	s.server.Close()
}
