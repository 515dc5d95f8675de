package routetests

import (
	"fmt"
	"reflect"
	"strings"
)

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// findCycle looks for a reference cycle in a value, such as a database record that points
// back to itself through its associations. It returns the location of the repeated reference.
func findCycle(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}
	return walkForCycle(reflect.ValueOf(value), "$", make(map[visit]bool))
}

func walkForCycle(v reflect.Value, path string, onPath map[visit]bool) (string, bool) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return "", false
		}
		return walkForCycle(v.Elem(), path, onPath)
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return "", false
		}
		key := visit{ptr: v.Pointer(), typ: v.Type()}
		if v.Kind() == reflect.Slice && v.Len() == 0 {
			return "", false
		}
		if onPath[key] {
			return path, true
		}
		onPath[key] = true
		defer delete(onPath, key)
		switch v.Kind() {
		case reflect.Ptr:
			return walkForCycle(v.Elem(), path, onPath)
		case reflect.Map:
			iter := v.MapRange()
			for iter.Next() {
				if where, found := walkForCycle(iter.Value(), fmt.Sprintf("%s.%v", path, iter.Key()), onPath); found {
					return where, true
				}
			}
			return "", false
		default:
			return walkElements(v, path, onPath)
		}
	case reflect.Array:
		return walkElements(v, path, onPath)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" || field.Tag.Get("json") == "-" {
				continue
			}
			name := field.Name
			if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag != "" {
				name = tag
			}
			if where, found := walkForCycle(v.Field(i), path+"."+name, onPath); found {
				return where, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func walkElements(v reflect.Value, path string, onPath map[visit]bool) (string, bool) {
	for i := 0; i < v.Len(); i++ {
		if where, found := walkForCycle(v.Index(i), fmt.Sprintf("%s[%d]", path, i), onPath); found {
			return where, true
		}
	}
	return "", false
}

func checkExpectation(field string, value interface{}) error {
	if where, found := findCycle(value); found {
		return configErrorf(
			"%s value refers back to itself at %s; it looks like a live record rather than plain data,"+
				" and can never match a response body", field, where)
	}
	return nil
}
