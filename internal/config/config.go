package config

import (
	"os"
	"time"

	"pizza-text-bot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
)

const (
	DEFAULT_BACKEND_ADDR    = "http://localhost:3001"
	DEFAULT_ORDERS_LOG_FILE = "orders-log.json"
	DEFAULT_SESSION_TTL     = 2 * time.Hour
)

type (
	// Conf contains the application settings
	Conf struct {
		Server Server `yaml:"server"`

		// WhatsApp push gateway the bot talks through
		Gateway Gateway `yaml:"gateway"`

		// pizzeria order management API (catalog + orders)
		Backend Backend `yaml:"backend"`

		// customer numbers the bot is allowed to talk to;
		// empty list means everyone
		AllowedNumbers []string `yaml:"allowed_numbers"`

		OrdersLogFile string        `yaml:"orders_log_file"`
		SessionTTL    time.Duration `yaml:"session_ttl"`

		RunInDebug bool `yaml:"-"`
	}

	Server struct {
		Host   string `yaml:"host"`
		Listen string `yaml:"listen"`
	}

	Gateway struct {
		Addr     string `yaml:"addr"`
		Login    string `yaml:"login"`
		Password string `yaml:"password"`
	}

	Backend struct {
		Addr string `yaml:"addr"`
	}
)

func GetConfig(configPath string, cnf *Conf) {
	logger.Debug("Loading configuration")

	input, err := os.Open(configPath)
	if err != nil {
		logger.Crit("Error while reading config!")
	}
	defer input.Close()

	decoder := yaml.NewDecoder(input)
	err = decoder.Decode(cnf)
	if err != nil {
		logger.Crit("Error while decoding config!")
	}

	if cnf.Backend.Addr == "" {
		cnf.Backend.Addr = DEFAULT_BACKEND_ADDR
	}
	if cnf.OrdersLogFile == "" {
		cnf.OrdersLogFile = DEFAULT_ORDERS_LOG_FILE
	}
	if cnf.SessionTTL <= 0 {
		cnf.SessionTTL = DEFAULT_SESSION_TTL
	}
}

func Inject(key string, cnf *Conf) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, cnf)
	}
}
