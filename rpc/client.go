package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Path is the single RPC path of the remote endpoint
const Path = "/rpc"

const instrumentation = "github.com/viant/mcprpc/rpc"

type (
	// Request represents the RPC request body
	Request struct {
		Method string        `json:"method"`
		Args   []interface{} `json:"args"`
	}

	// Response represents a raw RPC response
	Response struct {
		Status      int
		ContentType string
		Body        []byte
	}

	// Client calls the remote RPC endpoint
	Client struct {
		url           string
		secret        string
		httpClient    *http.Client
		tracer        trace.Tracer
		meterProvider metric.MeterProvider
		calls         metric.Int64Counter
		latency       metric.Float64Histogram
	}
)

// OK returns true for 2xx status
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Call posts method and positional args, ctx cancellation aborts the request
func (c *Client) Call(ctx context.Context, method string, args []interface{}) (ret *Response, err error) {
	started := time.Now()
	ctx, span := c.tracer.Start(ctx, "rpc.call", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("rpc.method", method)))
	defer func() {
		attrs := []attribute.KeyValue{attribute.String("rpc.method", method), attribute.Bool("success", err == nil && ret.OK())}
		if ret != nil {
			attrs = append(attrs, attribute.Int("http.status_code", ret.Status))
			span.SetAttributes(attribute.Int("http.status_code", ret.Status), attribute.Int("http.response_size", len(ret.Body)))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		options := metric.WithAttributes(attrs...)
		c.calls.Add(ctx, 1, options)
		c.latency.Record(ctx, time.Since(started).Seconds(), options)
	}()

	if args == nil {
		args = []interface{}{}
	}
	body, err := json.Marshal(&Request{Method: method, Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %v args: %w", method, err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+Path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.secret)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v response: %w", method, err)
	}
	return &Response{Status: response.StatusCode, ContentType: response.Header.Get("Content-Type"), Body: data}, nil
}

// New creates a client for base URL
func New(baseURL, secret string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("url was empty")
	}
	ret := &Client{
		url:        strings.TrimRight(baseURL, "/"),
		secret:     secret,
		httpClient: &http.Client{},
		tracer:     otel.Tracer(instrumentation),
	}
	meter := otel.Meter(instrumentation)
	for _, option := range options {
		option(ret)
	}
	if ret.meterProvider != nil {
		meter = ret.meterProvider.Meter(instrumentation)
	}
	var err error
	if ret.calls, err = meter.Int64Counter("mcprpc.rpc.calls", metric.WithDescription("Number of RPC calls")); err != nil {
		return nil, err
	}
	if ret.latency, err = meter.Float64Histogram("mcprpc.rpc.latency", metric.WithDescription("RPC latency in seconds"), metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return ret, nil
}
