package websocket

import (
	"log/slog"
	"net/http"
	"strconv"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades connections and runs them as subscribers of the
// requested household. Events for other households are never visible here:
// the subscription itself is household-scoped.
func HandleWebSocket(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, err := strconv.ParseInt(r.URL.Query().Get("household_id"), 10, 64)
		if err != nil || householdID <= 0 {
			http.Error(w, "household_id is required", http.StatusBadRequest)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Allow connections from any origin (household LAN)
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn)
		client.Run(r.Context(), householdID)
	}
}
