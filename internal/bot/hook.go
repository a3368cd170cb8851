package bot

import (
	"pizza-text-bot/internal/config"
	"pizza-text-bot/internal/gateway"
	"pizza-text-bot/internal/logger"

	"github.com/gin-gonic/gin"
)

const receivePath = "/whatsapp-push/receive/"

// InitHooks registers the receiving endpoint and points the gateway
// webhook at it.
func InitHooks(app *gin.Engine, cnf *config.Conf, gw *gateway.Client) {
	logger.Info("Init receiving endpoint...")

	app.POST(receivePath, Receive)

	logger.Info("Setup hook on WhatsApp gateway...")

	_, err := gw.SetHook(cnf.Server.Host + receivePath)
	if err != nil {
		logger.Crit("Error while setup hook:", err)
	}
}

func DestroyHooks(gw *gateway.Client) {
	logger.Info("Destroy hook on WhatsApp gateway...")

	_, err := gw.DeleteHook()
	if err != nil {
		logger.Warning("Error while delete hook:", err)
	}
}
