package storage

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"pizza-text-bot/internal/logger"
	"pizza-text-bot/internal/order"
)

type (
	// OrdersLog is the append-only JSON record of every submitted order,
	// successful or not. Read-back is for operators, not for the bot.
	OrdersLog struct {
		path string

		mu sync.Mutex
	}

	Record struct {
		order.Order

		FailedToSend bool      `json:"failedToSend"`
		CreatedAt    time.Time `json:"createdAt"`
	}
)

func NewOrdersLog(path string) *OrdersLog {
	return &OrdersLog{path: path}
}

// Save appends one record. A missing or corrupt file is recreated rather
// than failing the order.
func (l *OrdersLog) Save(o order.Order, failed bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var records []Record

	if input, err := os.ReadFile(l.path); err == nil {
		if err = json.Unmarshal(input, &records); err != nil {
			logger.Warning("Error while read", l.path, ", recreating file.", err)
			records = nil
		}
	}

	records = append(records, Record{
		Order:        o,
		FailedToSend: failed,
		CreatedAt:    time.Now().UTC(),
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	err = os.WriteFile(l.path, data, 0666)
	if err != nil {
		logger.Warning("Error while save order to file", err)
		return err
	}

	logger.Info("Order", o.Code, "saved to file")
	return nil
}

// Records reads back every saved record; a missing file is an empty log.
func (l *OrdersLog) Records() ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	input, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	var records []Record
	if err = json.Unmarshal(input, &records); err != nil {
		return nil, err
	}

	return records, nil
}
