package handler

import (
	"io"
	"time"

	"vintage-vault/internal/bidding"
	"vintage-vault/internal/realtime"
	"vintage-vault/internal/session"
	"vintage-vault/services/market/helpers"
	"vintage-vault/utils"

	"github.com/gin-gonic/gin"
	"k8s.io/utils/clock"
)

// LiveConfig is what a live auction screen needs besides the bidding service
type LiveConfig struct {
	Feed             realtime.Subscriber
	Sessions         *session.Broker
	Clock            clock.WithTickerAndDelayedExecution
	WinRedirectDelay time.Duration
	CountdownPeriod  time.Duration
}

// LiveHandler handles GET /items/:item_id/live. It streams the item's
// snapshot, countdown and notices as server-sent events until the client
// goes away or the room stops.
func (h *MarketHandler) LiveHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	room, err := h.svc.Bidding.OpenRoom(c.Request.Context(), bidding.RoomConfig{
		ItemID:           itemID,
		Viewer:           currentSession(c),
		Feed:             h.live.Feed,
		Sessions:         h.live.Sessions,
		Clock:            h.live.Clock,
		WinRedirectDelay: h.live.WinRedirectDelay,
		CountdownPeriod:  h.live.CountdownPeriod,
	})
	if err != nil {
		helpers.RespondError(c, "LiveHandler", err, map[string]any{"item_id": itemID})
		return
	}
	defer room.Close()

	utils.Info("LiveHandler: viewer joined", map[string]any{"item_id": itemID, "user_id": userID(c)})

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-room.Done():
			return false
		case f, ok := <-room.Frames():
			if !ok {
				return false
			}
			c.SSEvent(string(f.Kind), f)
			return true
		}
	})

	utils.Info("LiveHandler: viewer left", map[string]any{"item_id": itemID, "user_id": userID(c)})
}
