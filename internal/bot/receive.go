package bot

import (
	"context"
	"net/http"

	"pizza-text-bot/internal/gateway"
	"pizza-text-bot/internal/logger"

	"github.com/gin-gonic/gin"
)

// Receive handles one push from the WhatsApp gateway. The push is answered
// immediately; the conversation turn runs in the background and the reply
// goes out through the gateway client.
func Receive(c *gin.Context) {
	var msg gateway.Message
	if err := c.BindJSON(&msg); err != nil {
		logger.Warning("Error while receive message", err)

		c.Status(http.StatusBadRequest)
		return
	}

	logger.Debug("Receive message:", msg)

	// react only to customer messages in individual chats
	if msg.FromMe || (msg.ChatType != "" && msg.ChatType != gateway.CHAT_USER) {
		c.Status(http.StatusOK)
		return
	}
	if msg.Type != gateway.MESSAGE_TEXT && msg.Type != gateway.MESSAGE_LOCATION {
		c.Status(http.StatusOK)
		return
	}

	allowed := c.MustGet("allowed").(*AllowList)
	if !allowed.Contains(msg.Phone) {
		logger.Info("Number not allowed:", msg.Phone)
		c.Status(http.StatusOK)
		return
	}

	cCp := c.Copy()
	go func(cCp *gin.Context, msg gateway.Message) {
		flow := cCp.MustGet("flow").(*Flow)
		gw := cCp.MustGet("gateway").(*gateway.Client)

		// the request context dies with the push response; the turn
		// keeps its own lifetime
		ctx := context.Background()

		reply := flow.HandleMessage(ctx, msg.Phone, msg.Body())
		if reply == "" {
			logger.Info("No reply generated for", msg.Phone)
			return
		}

		if err := gw.Send(ctx, msg.Phone, reply); err != nil {
			logger.Warning("Error while send reply to", msg.Phone, err)
		}
	}(cCp, msg)

	c.Status(http.StatusOK)
}
