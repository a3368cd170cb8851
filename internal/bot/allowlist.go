package bot

import (
	"sync"

	"github.com/gin-gonic/gin"

	mapset "github.com/deckarep/golang-set/v2"
)

// AllowList holds the customer numbers the bot answers to. An empty list
// allows everyone. Update builds a fresh set and swaps it in one step, so
// readers never observe a half-reloaded list.
type AllowList struct {
	mu      sync.RWMutex
	numbers mapset.Set[string]
}

func NewAllowList(numbers []string) *AllowList {
	return &AllowList{
		numbers: mapset.NewSet(numbers...),
	}
}

func (l *AllowList) Update(numbers []string) {
	fresh := mapset.NewSet(numbers...)

	l.mu.Lock()
	l.numbers = fresh
	l.mu.Unlock()
}

func (l *AllowList) Contains(phone string) bool {
	l.mu.RLock()
	numbers := l.numbers
	l.mu.RUnlock()

	return numbers.IsEmpty() || numbers.Contains(phone)
}

func InjectAllowList(key string, list *AllowList) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, list)
	}
}
