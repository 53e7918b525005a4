package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		debug       bool
		expectDebug bool
	}{
		{description: "info level drops debug", debug: false, expectDebug: false},
		{description: "debug level keeps debug", debug: true, expectDebug: true},
	}
	for _, testCase := range testCases {
		buffer := &bytes.Buffer{}
		logger := New(buffer, testCase.debug)
		logger.Debug().Msg("debug message")
		logger.Info().Msg("info message")
		assert.Equal(t, testCase.expectDebug, bytes.Contains(buffer.Bytes(), []byte("debug message")), testCase.description)
		assert.True(t, bytes.Contains(buffer.Bytes(), []byte("info message")), testCase.description)
	}
}
