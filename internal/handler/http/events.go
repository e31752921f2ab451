package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/siteworks-hq/siteworks-backend-go/internal/handler/http/response"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
)

// knownTopics are the logical tables clients may watch for changes.
var knownTopics = []string{"attendance", "payroll", "inventory", "cashbook"}

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub *sse.Hub
}

func NewEventsHandler(hub *sse.Hub) EventsHandler {
	return &eventsHandlerImpl{
		hub: hub,
	}
}

// Stream implements EventsHandler. Clients subscribe with
// ?topics=attendance,payroll and refetch on each notification.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	topics := knownTopics
	if param := r.URL.Query().Get("topics"); param != "" {
		var requested []string
		for _, t := range strings.Split(param, ",") {
			t = strings.TrimSpace(t)
			for _, known := range knownTopics {
				if t == known {
					requested = append(requested, t)
					break
				}
			}
		}
		if len(requested) == 0 {
			response.BadRequest(w, "No valid topics requested", nil)
			return
		}
		topics = requested
	}

	ch, cleanup := h.hub.Subscribe(topics)
	defer cleanup()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, data)
			flusher.Flush()
		}
	}
}
