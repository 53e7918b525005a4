package server

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Level represents MCP logging severity, higher is more severe
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarning
	LevelError
	LevelCritical
	LevelAlert
	LevelEmergency
)

var levelNames = []string{"debug", "info", "notice", "warning", "error", "critical", "alert", "emergency"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel parses MCP logging level name
func ParseLevel(name string) (Level, bool) {
	for i, candidate := range levelNames {
		if candidate == name {
			return Level(i), true
		}
	}
	return 0, false
}

type levelHolder struct {
	value atomic.Int32
}

func (h *levelHolder) get() Level {
	return Level(h.value.Load())
}

func (h *levelHolder) set(level Level) {
	h.value.Store(int32(level))
}

func newLevelHolder(level Level) *levelHolder {
	ret := &levelHolder{}
	ret.set(level)
	return ret
}

type messageParams struct {
	Level  string      `json:"level"`
	Logger string      `json:"logger,omitempty"`
	Data   interface{} `json:"data"`
}

// Logger sends MCP log notifications to the client
type Logger struct {
	name     string
	level    *levelHolder
	notifier transport.Notifier
}

func (l *Logger) log(ctx context.Context, level Level, data any) error {
	if l == nil || l.notifier == nil || l.level.get() > level {
		return nil
	}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	var err error
	notification.Params, err = json.Marshal(messageParams{Level: level.String(), Logger: l.name, Data: data})
	if err != nil {
		return err
	}
	return l.notifier.Notify(ctx, notification)
}

func (l *Logger) Debug(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelDebug, data)
}

func (l *Logger) Warning(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelWarning, data)
}

func (l *Logger) Error(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelError, data)
}

func NewLogger(name string, level *levelHolder, notifier transport.Notifier) *Logger {
	if level == nil {
		level = newLevelHolder(LevelInfo)
	}
	return &Logger{
		name:     name,
		level:    level,
		notifier: notifier,
	}
}
