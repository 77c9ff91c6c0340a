// Package sysfssink implements the optional sysfs-like publication
// sink from spec section 6: for each decoded sensor frame it writes
// <root>/<TYPE>/<id>/<channel>/<field> files with string contents.
// It carries no protocol logic of its own — it only stringifies
// already-decoded event fields — so it stays in scope as the one
// concrete demonstration of the event bus's collaborator seam.
package sysfssink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jechtern/rf433d/internal/bus"
)

// Sink writes decoded events under Root using the sysfs-like tree
// layout.
type Sink struct {
	Root string
}

// New builds a Sink rooted at root. The directory tree is created
// lazily per event, not eagerly.
func New(root string) *Sink {
	return &Sink{Root: root}
}

// Handler returns a bus.Handler bound to this sink.
func (s *Sink) Handler() bus.Handler {
	return s.handle
}

func (s *Sink) handle(evt bus.Event) {
	dir := filepath.Join(s.Root, evt.Protocol.String(), fmt.Sprintf("%d", evt.DeviceID), fmt.Sprintf("%d", evt.Channel))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	for field, value := range s.fields(evt) {
		_ = os.WriteFile(filepath.Join(dir, field), []byte(value), 0o644)
	}
}

func (s *Sink) fields(evt bus.Event) map[string]string {
	fields := make(map[string]string, 3)
	if evt.FKey1 == bus.Temperature {
		fields["temp"] = fmt.Sprintf("%.1f", evt.FValue1)
	}
	if evt.IKey1 == bus.Humidity {
		fields["humi"] = fmt.Sprintf("%d", evt.IValue1)
	} else if evt.IKey2 == bus.Humidity {
		fields["humi"] = fmt.Sprintf("%d", evt.IValue2)
	}
	if evt.IKey1 == bus.Battery {
		fields["batt"] = fmt.Sprintf("%d", evt.IValue1)
	} else if evt.IKey2 == bus.Battery {
		fields["batt"] = fmt.Sprintf("%d", evt.IValue2)
	}
	return fields
}
