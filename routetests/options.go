package routetests

// Option is an argument of a route declaration.
type Option func(*declaration)

type declaration struct {
	server    ServerFunc
	prefix    string
	hasPrefix bool
	routes    []Route
	hasRoutes bool
	modifier  Modifier
	block     func(*Scope) error
	err       error
}

func (d *declaration) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// WithServer sets the server for the declaration and everything nested in it.
func WithServer(server Server) Option {
	return func(d *declaration) {
		if server == nil {
			d.fail(configErrorf("WithServer was called with a nil server"))
			return
		}
		d.server = func() Server { return server }
	}
}

// WithServerFunc is like WithServer, but the server is obtained from fn each time one of the
// routes runs. This is how servers that start on first use, such as the ones from Autorun, are
// passed in.
func WithServerFunc(fn func() Server) Option {
	return func(d *declaration) {
		if fn == nil {
			d.fail(configErrorf("WithServerFunc was called with a nil function"))
			return
		}
		d.server = fn
	}
}

// WithPrefix adds a path prefix for the declaration and everything nested in it.
func WithPrefix(prefix string) Option {
	return func(d *declaration) {
		d.prefix = prefix
		d.hasPrefix = true
	}
}

// WithRoutes sets the routes to declare. It can be called with no routes, for a declaration
// that only sets up context for its block.
func WithRoutes(routes ...Route) Option {
	return func(d *declaration) {
		d.routes = append(d.routes, routes...)
		d.hasRoutes = true
	}
}

// WithModifier adds a route modifier for the declaration and everything nested in it.
func WithModifier(m Modifier) Option {
	return func(d *declaration) {
		if m == nil {
			d.fail(configErrorf("WithModifier was called with a nil modifier"))
			return
		}
		d.modifier = m
	}
}

// WithBlock sets a function that makes nested declarations. It runs after the declaration's
// own routes have been declared.
func WithBlock(block func(*Scope) error) Option {
	return func(d *declaration) {
		d.block = block
	}
}

// Config holds the arguments of a declaration, as an alternative to options.
type Config struct {
	Server        Server
	ServerFunc    func() Server
	PathPrefix    string
	Routes        []Route
	RouteModifier Modifier
	Block         func(*Scope) error
}
