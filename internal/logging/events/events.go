// Package events provides typed trace emitters so call sites log behavior
// activity without hand-writing event names.
package events

import "github.com/hypoth-org/hypoth-ui-sub001/internal/logging"

// AppTracer emits application lifecycle entries.
type AppTracer struct{}

// App is the shared application tracer.
var App AppTracer

func (AppTracer) Start(payload map[string]interface{}) { logging.Trace("app.start", payload) }
func (AppTracer) Exit(payload map[string]interface{})  { logging.Trace("app.exit", payload) }

// WidgetTracer emits interaction-behavior entries, keyed by widget kind.
type WidgetTracer struct {
	kind string
}

// Widget returns a tracer for one widget kind ("select", "combobox", ...).
func Widget(kind string) WidgetTracer { return WidgetTracer{kind: kind} }

func (w WidgetTracer) Open()  { logging.Trace(w.kind+".open", nil) }
func (w WidgetTracer) Close() { logging.Trace(w.kind+".close", nil) }

func (w WidgetTracer) Selection(values []string) {
	logging.Trace(w.kind+".selection", map[string]interface{}{"values": values})
}

func (w WidgetTracer) Highlight(value string) {
	logging.Trace(w.kind+".highlight", map[string]interface{}{"value": value})
}

func (w WidgetTracer) Status(status string) {
	logging.Trace(w.kind+".status", map[string]interface{}{"status": status})
}

func (w WidgetTracer) Dismiss(reason string) {
	logging.Trace(w.kind+".dismiss", map[string]interface{}{"reason": reason})
}

func (w WidgetTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace(w.kind+".error", map[string]interface{}{"error": err.Error()})
}

// SourceTracer emits suggestion-source entries.
type SourceTracer struct{}

// Source is the shared suggestion-source tracer.
var Source SourceTracer

func (SourceTracer) Query(query string, hits int) {
	logging.Trace("source.query", map[string]interface{}{"query": query, "hits": hits})
}

func (SourceTracer) Cancelled(query string) {
	logging.Trace("source.cancelled", map[string]interface{}{"query": query})
}
