package handlers

import (
	"cribbage-show/internal/models"
	ws "cribbage-show/pkg/websocket"
)

// feed is set by main at startup so HTTP handlers can broadcast realtime updates.
var feed *ws.HubRef

func SetFeed(r *ws.HubRef) {
	feed = r
}

func broadcastShow(show *models.Show) {
	if feed == nil || show == nil {
		return
	}
	feed.Publish(ws.FeedRoom, "show_scored", show)
}
