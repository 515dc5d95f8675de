package routetests

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// MatchSubset reports whether expected is a structural subset of actual. If not, it also
// returns the JSONPath-like location of the first difference.
//
// Objects match if every property of expected matches the same property of actual; extra
// properties in actual are ignored. Arrays match if every element of expected matches at
// least one element of actual, in any order. Anything else must be equal.
func MatchSubset(actual, expected ldvalue.Value) (bool, string) {
	return matchSubset(actual, expected, "$")
}

func matchSubset(actual, expected ldvalue.Value, path string) (bool, string) {
	switch expected.Type() {
	case ldvalue.ObjectType:
		if actual.Type() != ldvalue.ObjectType {
			return false, path
		}
		actualKeys := make(map[string]bool)
		for _, key := range actual.Keys() {
			actualKeys[key] = true
		}
		for _, key := range expected.Keys() {
			if !actualKeys[key] {
				return false, path + "." + key
			}
			if ok, where := matchSubset(actual.GetByKey(key), expected.GetByKey(key), path+"."+key); !ok {
				return false, where
			}
		}
		return true, ""
	case ldvalue.ArrayType:
		if actual.Type() != ldvalue.ArrayType {
			return false, path
		}
		for i := 0; i < expected.Count(); i++ {
			if !containsMatch(actual, expected.GetByIndex(i)) {
				return false, fmt.Sprintf("%s[%d]", path, i)
			}
		}
		return true, ""
	default:
		if !actual.Equal(expected) {
			return false, path
		}
		return true, ""
	}
}

func containsMatch(array, expected ldvalue.Value) bool {
	for i := 0; i < array.Count(); i++ {
		if ok, _ := matchSubset(array.GetByIndex(i), expected, ""); ok {
			return true
		}
	}
	return false
}
