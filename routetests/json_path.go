package routetests

import (
	"sort"

	"github.com/ohler55/ojg/jp"
	"github.com/stretchr/testify/assert"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type pathExpectation struct {
	source   string
	expr     jp.Expr
	expected ldvalue.Value
}

// compilePathExpectations parses the JSONPath expressions of a route, sorted by expression so
// that test case order is stable.
func compilePathExpectations(paths map[string]interface{}) ([]pathExpectation, error) {
	ret := make([]pathExpectation, 0, len(paths))
	for source, expected := range paths {
		expr, err := jp.ParseString(source)
		if err != nil {
			return nil, configErrorf("invalid JSONPath expression %q: %s", source, err)
		}
		field := "expected value for " + source
		if err := checkExpectation(field, expected); err != nil {
			return nil, err
		}
		value, err := jsonValue(field, expected)
		if err != nil {
			return nil, err
		}
		ret = append(ret, pathExpectation{source: source, expr: expr, expected: value})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].source < ret[j].source })
	return ret, nil
}

// assertPath checks that the first match of the expression in the response body contains the
// expected value.
func (p pathExpectation) assertPath(t assert.TestingT, res *Response) bool {
	matches := p.expr.Get(res.Body.AsArbitraryValue())
	if len(matches) == 0 {
		return assert.Fail(t, "JSONPath expression matched nothing",
			"%s in %s", p.source, res.Body.JSONString())
	}
	return AssertSubset(t, ldvalue.CopyArbitraryValue(matches[0]), p.expected, "at %s", p.source)
}
