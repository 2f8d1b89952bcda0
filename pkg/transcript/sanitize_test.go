package transcript

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type jsonableValue struct{}

func (v jsonableValue) ToJSON() interface{} {
	return map[string]interface{}{"kind": "custom"}
}

type panickyStringer struct{}

func (p panickyStringer) String() string {
	panic("no string for you")
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		name     string
		value    interface{}
		expected interface{}
	}{
		{
			"nil",
			nil,
			nil,
		},
		{
			"string",
			"hello",
			"hello",
		},
		{
			"bool",
			true,
			true,
		},
		{
			"int",
			42,
			42,
		},
		{
			"float",
			1.5,
			1.5,
		},
		{
			"valid_utf8_bytes",
			[]byte("héllo"),
			"héllo",
		},
		{
			"invalid_utf8_bytes",
			[]byte{0x68, 0x69, 0xff},
			"hi�",
		},
		{
			"error_value",
			errors.New("boom"),
			"boom",
		},
		{
			"jsonable",
			jsonableValue{},
			map[string]interface{}{"kind": "custom"},
		},
		{
			"map_with_non_string_keys",
			map[int]string{1: "one"},
			map[string]interface{}{"1": "one"},
		},
		{
			"nested_slice",
			[]interface{}{"a", []int{1, 2}},
			[]interface{}{"a", []interface{}{1, 2}},
		},
		{
			"struct_attribute_bag",
			struct {
				Name   string
				Count  int
				hidden string
			}{Name: "deploy", Count: 3, hidden: "x"},
			map[string]interface{}{"Name": "deploy", "Count": 3},
		},
		{
			"opaque_value",
			func() {},
			nil, // compared by type below; functions stringify to an address
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Sanitize(tc.value)

			if tc.name == "opaque_value" {
				if _, ok := actual.(string); !ok {
					t.Errorf("expected opaque value to sanitize to a string, got %T", actual)
				}
				return
			}

			if !cmp.Equal(tc.expected, actual) {
				t.Errorf("expected %v got %v", tc.expected, actual)
			}
		})
	}
}

func TestSanitizeCyclicValueTerminates(t *testing.T) {
	cyclic := make(map[string]interface{})
	cyclic["self"] = cyclic

	actual := Sanitize(cyclic)

	// The depth guard bottoms out on a string rendering rather than
	// recursing forever.
	current := actual
	depth := 0
	for {
		m, ok := current.(map[string]interface{})
		if !ok {
			if _, ok := current.(string); !ok {
				t.Errorf("expected cycle to degrade to a string, got %T", current)
			}
			break
		}
		current = m["self"]
		depth++
		if depth > maxSanitizeDepth+1 {
			t.Fatal("sanitized value nested deeper than the depth guard allows")
		}
	}
}

func TestSanitizeNeverPanics(t *testing.T) {
	actual := Sanitize(panickyStringer{})

	if fmt.Sprintf("%T", actual) != "string" {
		t.Errorf("expected panicking value to degrade to a string, got %T", actual)
	}
}
