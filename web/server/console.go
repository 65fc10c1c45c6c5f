package server

import (
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and mirroring them to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	serverLog   log.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		serverLog:   log.New("render"),
	}
}

// Debugf implements core.Logger
func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.serverLog.Debugf("%s: %s", wl.renderID, message)
	wl.send("debug", message)
}

// Infof implements core.Logger
func (wl *WebLogger) Infof(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.serverLog.Infof("%s: %s", wl.renderID, message)
	wl.send("info", message)
}

// Warningf implements core.Logger
func (wl *WebLogger) Warningf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.serverLog.Warningf("%s: %s", wl.renderID, message)
	wl.send("warning", message)
}

// send forwards to the web console without blocking
func (wl *WebLogger) send(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip (don't block)
	}
}
