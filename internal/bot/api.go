package bot

import (
	"net/http"
	"regexp"
	"time"

	"pizza-text-bot/internal/gateway"
	"pizza-text-bot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	sendRequest struct {
		Phone   string `json:"phone" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	broadcastRequest struct {
		Phones  []string `json:"phones" binding:"required"`
		Message string   `json:"message" binding:"required"`
	}

	templateRequest struct {
		Phone        string            `json:"phone" binding:"required"`
		TemplateName string            `json:"templateName" binding:"required"`
		Variables    map[string]string `json:"variables"`
	}

	simulateRequest struct {
		Phone string `json:"phone" binding:"required"`
		Text  string `json:"text" binding:"required"`
	}

	webhookRequest struct {
		Event string `json:"event" binding:"required"`
		Data  struct {
			Phone   string `json:"phone"`
			OrderID string `json:"orderId"`
		} `json:"data"`
	}
)

var reNotDigit = regexp.MustCompile(`\D`)

// InitAPI registers the operator-facing endpoints.
func InitAPI(app *gin.Engine) {
	logger.Info("Init admin API endpoints...")

	app.GET("/health", health)

	api := app.Group("/api")
	api.POST("/messages/send", sendMessage)
	api.POST("/messages/broadcast", broadcastMessage)
	api.POST("/messages/template", sendTemplate)
	api.POST("/messages/simulate", simulateMessage)
	api.GET("/sessions", listSessions)
	api.GET("/sessions/:phone", getSession)
	api.DELETE("/sessions/:phone", resetSession)
	api.GET("/menu", getMenu)
	api.POST("/webhook", webhook)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func sendMessage(c *gin.Context) {
	var req sendRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Phone and message are required"})
		return
	}

	gw := c.MustGet("gateway").(*gateway.Client)
	phone := reNotDigit.ReplaceAllString(req.Phone, "")

	exists, err := gw.CheckNumber(c.Request.Context(), phone)
	if err == nil && !exists {
		err = &gateway.HttpError{Url: "/number/status/", Code: http.StatusNotFound, Message: "Número não possui WhatsApp"}
	}
	if err == nil {
		err = gw.Send(c.Request.Context(), phone, req.Message)
	}
	if err != nil {
		logger.Warning("Error while send message to", phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"data":    gin.H{"phone": req.Phone, "message": req.Message},
	})
}

func broadcastMessage(c *gin.Context) {
	var req broadcastRequest
	if err := c.BindJSON(&req); err != nil || len(req.Phones) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Phones must be a non-empty array and message is required"})
		return
	}

	gw := c.MustGet("gateway").(*gateway.Client)

	results := lo.Map(req.Phones, func(phone string, _ int) gin.H {
		if err := gw.Send(c.Request.Context(), phone, req.Message); err != nil {
			return gin.H{"phone": phone, "status": "failed", "error": err.Error()}
		}
		return gin.H{"phone": phone, "status": "sent"}
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Broadcast completed",
		"data":    results,
	})
}

func sendTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Phone and templateName are required"})
		return
	}

	gw := c.MustGet("gateway").(*gateway.Client)
	message := Template(req.TemplateName, req.Variables)

	if err := gw.Send(c.Request.Context(), req.Phone, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Template sent successfully",
		"data":    gin.H{"phone": req.Phone, "templateName": req.TemplateName, "message": message},
	})
}

// simulateMessage injects an inbound text straight into the state machine,
// bypassing the gateway. Useful for tests and manual poking.
func simulateMessage(c *gin.Context) {
	var req simulateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Phone and text are required"})
		return
	}

	flow := c.MustGet("flow").(*Flow)
	response := flow.HandleMessage(c.Request.Context(), req.Phone, req.Text)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message simulated successfully",
		"data":    gin.H{"phone": req.Phone, "text": req.Text, "response": response},
	})
}

func listSessions(c *gin.Context) {
	flow := c.MustGet("flow").(*Flow)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    flow.Sessions().All(),
	})
}

func getSession(c *gin.Context) {
	flow := c.MustGet("flow").(*Flow)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    flow.Sessions().Get(c.Param("phone")),
	})
}

func resetSession(c *gin.Context) {
	flow := c.MustGet("flow").(*Flow)
	flow.Sessions().Reset(c.Param("phone"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Session reset successfully",
	})
}

func getMenu(c *gin.Context) {
	flow := c.MustGet("flow").(*Flow)

	menuText, err := flow.Menu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"menuText": menuText},
	})
}

// webhook lets external systems (the order backend, mostly) trigger
// customer notifications on order lifecycle events.
func webhook(c *gin.Context) {
	var req webhookRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Event is required"})
		return
	}

	logger.Event("Webhook received:", req.Event, req.Data)

	gw := c.MustGet("gateway").(*gateway.Client)

	var text string
	switch req.Event {
	case "order.created":
		if req.Data.OrderID != "" {
			text = "✅ Seu pedido #" + req.Data.OrderID + " foi recebido e está sendo preparado!"
		}
	case "order.ready":
		if req.Data.OrderID != "" {
			text = "🍕 Seu pedido #" + req.Data.OrderID + " está pronto e saiu para entrega!"
		}
	case "order.delivered":
		text = "🎉 Obrigado pela preferência! Esperamos que tenha gostado da sua pizza!"
	default:
		logger.Warning("Unknown webhook event type:", req.Event)
	}

	if text != "" && req.Data.Phone != "" {
		if err := gw.Send(c.Request.Context(), req.Data.Phone, text); err != nil {
			logger.Warning("Error while send webhook notification", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Webhook processed",
	})
}
