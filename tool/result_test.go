package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_MarshalJSON(t *testing.T) {
	var testCases = []struct {
		description string
		result      *Result
		expect      string
	}{
		{description: "text", result: Text("hello"), expect: `{"content":[{"type":"text","text":"hello"}]}`},
		{description: "empty text", result: Text(""), expect: `{"content":[{"type":"text","text":""}]}`},
		{description: "image", result: Image("AAA=", "image/jpeg"), expect: `{"content":[{"type":"image","data":"AAA=","mimeType":"image/jpeg"}]}`},
		{description: "error", result: Errorf("Fetch failed. Got (%v) %v", 500, "boom"), expect: `{"content":[{"type":"text","text":"Fetch failed. Got (500) boom"}],"isError":true}`},
		{description: "no content", result: &Result{}, expect: `{"content":[]}`},
		{description: "raw", result: Raw([]byte(`{"content":[{"type":"text","text":"x"}],"isError":true,"extra":1}`)), expect: `{"content":[{"type":"text","text":"x"}],"isError":true,"extra":1}`},
	}
	for _, testCase := range testCases {
		data, err := json.Marshal(testCase.result)
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, string(data), testCase.description)
	}
}
