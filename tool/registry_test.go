package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcprpc/contract"
)

func testMethod() *contract.Method {
	return &contract.Method{
		Name:        "generateImage",
		Description: "Generate an image",
		Params: []*contract.Param{
			{Name: "a", Type: "string", Description: "first"},
			{Name: "b", Type: "number", Description: "second", Optional: true},
		},
	}
}

func TestDescriptor(t *testing.T) {
	descriptor := Descriptor(testMethod())
	assert.Equal(t, "generateImage", descriptor.Name)
	assert.Equal(t, "Generate an image", *descriptor.Description)
	assert.Equal(t, []string{"a"}, descriptor.InputSchema.Required)

	data, err := json.Marshal(descriptor.InputSchema)
	require.NoError(t, err)
	var inputSchema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &inputSchema))
	assert.Equal(t, "object", inputSchema["type"])
	assert.EqualValues(t, map[string]interface{}{
		"a": map[string]interface{}{"description": "first", "type": "string"},
		"b": map[string]interface{}{"description": "second", "type": "number"},
	}, inputSchema["properties"])
}

func TestRegistry(t *testing.T) {
	var testCases = []struct {
		description string
		methods     []*contract.Method
		expectError bool
	}{
		{description: "valid", methods: []*contract.Method{testMethod(), {Name: "ping"}}},
		{description: "duplicate", methods: []*contract.Method{testMethod(), testMethod()}, expectError: true},
		{description: "empty name", methods: []*contract.Method{{Name: ""}}, expectError: true},
		{description: "space in name", methods: []*contract.Method{{Name: "two words"}}, expectError: true},
		{description: "unnamed param", methods: []*contract.Method{{Name: "x", Params: []*contract.Param{{Type: "string"}}}}, expectError: true},
	}
	for _, testCase := range testCases {
		registry, err := NewRegistry(testCase.methods...)
		if testCase.expectError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Len(t, registry.Tools(), len(testCase.methods), testCase.description)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry, err := FromContract(&contract.Contract{Methods: []*contract.Method{testMethod()}})
	require.NoError(t, err)
	method, ok := registry.Lookup("generateImage")
	require.True(t, ok)
	assert.Equal(t, "generateImage", method.Name)
	_, ok = registry.Lookup("missing")
	assert.False(t, ok)

	_, err = FromContract(nil)
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	method := testMethod()
	assert.Equal(t, []interface{}{"x", 2.0}, Args(method, map[string]interface{}{"b": 2.0, "a": "x", "extra": true}))
	assert.Equal(t, []interface{}{nil, 1.0}, Args(method, map[string]interface{}{"b": 1.0}))
	assert.Equal(t, []interface{}{nil, nil}, Args(method, nil))

	data, err := json.Marshal(Args(method, map[string]interface{}{"a": "x"}))
	require.NoError(t, err)
	assert.Equal(t, `["x",null]`, string(data))
}
