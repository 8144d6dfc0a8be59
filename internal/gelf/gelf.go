package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Writer sends GELF messages over UDP. It implements zapcore.WriteSyncer so
// it can be teed alongside the stderr core.
type Writer struct {
	conn     net.Conn
	hostname string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "compliance-gateway"
	}

	return &Writer{conn: conn, hostname: hostname}, nil
}

// Write implements io.Writer. Each call sends one GELF message. The zap JSON
// encoder writes one object per line; its msg and level fields become the
// GELF short_message and syslog level, with the raw line kept as
// full_message.
func (w *Writer) Write(p []byte) (int, error) {
	raw := strings.TrimRight(string(p), "\n")
	short := raw

	level := 6 // Informational
	var entry struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal(p, &entry); err == nil && entry.Msg != "" {
		short = entry.Msg
		switch entry.Level {
		case "error", "fatal", "panic", "dpanic":
			level = 3 // Error
		case "warn":
			level = 4 // Warning
		}
	}

	msg := map[string]interface{}{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": short,
		"full_message":  raw,
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         level,
		"_service":      "compliance-gateway",
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return len(p), nil // don't fail the log call
	}

	// Fire-and-forget
	w.conn.Write(payload)
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer. UDP has nothing to flush.
func (w *Writer) Sync() error {
	return nil
}
