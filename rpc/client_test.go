package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const secret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestClient_Call(t *testing.T) {
	var received struct {
		path          string
		method        string
		authorization string
		contentType   string
		body          map[string]interface{}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.path = r.URL.Path
		received.method = r.Method
		received.authorization = r.Header.Get("Authorization")
		received.contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &received.body)
		w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	recorder := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	client, err := New(server.URL+"/", secret,
		WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))),
		WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))))
	require.NoError(t, err)

	response, err := client.Call(context.Background(), "generateImage", []interface{}{"a cat", nil})
	require.NoError(t, err)
	assert.True(t, response.OK())
	assert.Equal(t, "hello", string(response.Body))
	assert.Equal(t, "text/plain;charset=UTF-8", response.ContentType)

	assert.Equal(t, Path, received.path)
	assert.Equal(t, http.MethodPost, received.method)
	assert.Equal(t, "Bearer "+secret, received.authorization)
	assert.Equal(t, "application/json", received.contentType)
	assert.EqualValues(t, map[string]interface{}{"method": "generateImage", "args": []interface{}{"a cat", nil}}, received.body)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "rpc.call", spans[0].Name())

	var metrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &metrics))
	var names []string
	for _, scope := range metrics.ScopeMetrics {
		for _, item := range scope.Metrics {
			names = append(names, item.Name)
		}
	}
	assert.ElementsMatch(t, []string{"mcprpc.rpc.calls", "mcprpc.rpc.latency"}, names)
}

func TestClient_Call_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request Request
		_ = json.NewDecoder(r.Body).Decode(&request)
		if request.Method == "slow" {
			<-r.Context().Done()
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Unauthorized"))
	}))
	defer server.Close()

	client, err := New(server.URL, "short")
	require.NoError(t, err)
	response, err := client.Call(context.Background(), "any", nil)
	require.NoError(t, err)
	assert.False(t, response.OK())
	assert.Equal(t, http.StatusUnauthorized, response.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Call(ctx, "slow", nil)
	assert.Error(t, err)

	_, err = New("", secret)
	assert.Error(t, err)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	client, err = New(closed.URL, secret)
	require.NoError(t, err)
	_, err = client.Call(context.Background(), "any", nil)
	assert.Error(t, err)
}
