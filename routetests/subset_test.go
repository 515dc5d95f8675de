package routetests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestMatchSubset(t *testing.T) {
	cases := []struct {
		actual, expected string
		match            bool
		where            string
	}{
		{`{"a":1,"b":2}`, `{"a":1}`, true, ""},
		{`{"a":{"b":1,"c":2}}`, `{"a":{"c":2}}`, true, ""},
		{`{"a":1}`, `{"a":2}`, false, "$.a"},
		{`{"a":1}`, `{"b":1}`, false, "$.b"},
		{`{"a":null}`, `{"a":null}`, true, ""},
		{`{}`, `{"a":null}`, false, "$.a"},
		{`[1,2,3]`, `[3,1]`, true, ""},
		{`[{"id":1,"x":true},{"id":2}]`, `[{"id":2}]`, true, ""},
		{`[1,2]`, `[4]`, false, "$[0]"},
		{`{"a":[1]}`, `{"a":{}}`, false, "$.a"},
		{`"text"`, `"text"`, true, ""},
		{`1`, `1.0`, true, ""},
		{`{"a":1}`, `{}`, true, ""},
	}
	for _, c := range cases {
		t.Run(c.expected+" in "+c.actual, func(t *testing.T) {
			ok, where := MatchSubset(ldvalue.Parse([]byte(c.actual)), ldvalue.Parse([]byte(c.expected)))
			assert.Equal(t, c.match, ok)
			assert.Equal(t, c.where, where)
		})
	}
}

func TestFindCycle(t *testing.T) {
	type node struct {
		Name     string  `json:"name"`
		Children []*node `json:"children"`
		Parent   *node   `json:"-"`
	}

	tree := &node{Name: "root"}
	tree.Children = []*node{{Name: "child", Parent: tree}}
	_, found := findCycle(tree)
	assert.False(t, found)

	shared := &node{Name: "shared"}
	_, found = findCycle([]*node{shared, shared})
	assert.False(t, found)

	loop := &node{Name: "loop"}
	loop.Children = []*node{loop}
	where, found := findCycle(loop)
	assert.True(t, found)
	assert.Equal(t, "$.children[0]", where)

	m := map[string]interface{}{}
	m["self"] = m
	where, found = findCycle(m)
	assert.True(t, found)
	assert.Equal(t, "$.self", where)

	_, found = findCycle(map[string]interface{}{"a": []interface{}{1, "x"}})
	assert.False(t, found)
}
