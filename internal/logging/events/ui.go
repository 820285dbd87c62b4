package events

import "github.com/hwpanel/menunav/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Button(name string) {
	logging.Trace("ui.button", map[string]interface{}{"button": name})
}

func (UITracer) Jump(query string, matched string) {
	logging.Trace("ui.jump", map[string]interface{}{"query": query, "matched": matched})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}
