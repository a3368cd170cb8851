package bot

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"pizza-text-bot/internal/catalog"
	"pizza-text-bot/internal/logger"
	"pizza-text-bot/internal/order"
	"pizza-text-bot/internal/parser"
	"pizza-text-bot/internal/session"

	"github.com/gin-gonic/gin"
)

type (
	// Catalog is the read side of the order backend.
	Catalog interface {
		ActiveFlavors(ctx context.Context) ([]catalog.Flavor, error)
		Menu(ctx context.Context) (string, error)
	}

	// Backend is the order intake side of the order backend.
	Backend interface {
		CreateOrder(ctx context.Context, o order.Order) error
	}

	// AuditLog records every submission attempt, failed ones included.
	AuditLog interface {
		Save(o order.Order, failed bool) error
	}

	// Flow is the conversation state machine. One instance serves every
	// customer; per-phone locking keeps messages of one customer in turn.
	Flow struct {
		sessions *session.Store
		catalog  Catalog
		backend  Backend
		audit    AuditLog

		locks keyedMutex
	}
)

var (
	menuCommands   = []string{"menu", "cardapio", "cardápio"}
	cancelCommands = []string{"cancelar", "recomeçar", "recomecar"}

	yesAnswers = []string{"sim", "s", "ok"}
	noAnswers  = []string{"nao", "não", "n"}
)

func NewFlow(sessions *session.Store, cat Catalog, backend Backend, audit AuditLog) *Flow {
	return &Flow{
		sessions: sessions,
		catalog:  cat,
		backend:  backend,
		audit:    audit,
	}
}

func (f *Flow) Sessions() *session.Store {
	return f.sessions
}

// Menu renders the current catalog text.
func (f *Flow) Menu(ctx context.Context) (string, error) {
	return f.catalog.Menu(ctx)
}

// HandleMessage advances the conversation of one customer by one inbound
// text and returns exactly one reply (empty means send nothing).
func (f *Flow) HandleMessage(ctx context.Context, phone, text string) string {
	unlock := f.locks.lock(phone)
	defer unlock()

	sess := f.sessions.Get(phone)
	lower := strings.ToLower(text)

	// global commands win over any state and never touch it
	if slices.Contains(menuCommands, lower) {
		menu, err := f.catalog.Menu(ctx)
		if err != nil {
			logger.Warning("Error while render menu", err)
			return MSG_MENU_UNAVAILABLE
		}
		return menu
	}
	if slices.Contains(cancelCommands, lower) {
		f.sessions.Reset(phone)
		return MSG_CANCELLED
	}

	reply, destroy := f.dispatch(ctx, &sess, text, lower)

	if destroy {
		f.sessions.Reset(phone)
	} else if err := f.sessions.Save(phone, sess); err != nil {
		logger.Warning("Error while save session for", phone, err)
	}

	return reply
}

// dispatch runs the per-state handler; destroy asks the caller to drop
// the session instead of persisting it.
func (f *Flow) dispatch(ctx context.Context, sess *session.Session, text, lower string) (reply string, destroy bool) {
	// state value outside the flow: corrupt session, fatal for it alone
	if !session.KnownState(sess.State) {
		logger.Warning("Unknown conversation state:", sess.State)
		return MSG_FLOW_ERROR, true
	}

	switch sess.State {
	case session.IDLE:
		sess.State = session.CHOOSING_OR_MENU
		return MSG_WELCOME, false

	case session.CHOOSING_OR_MENU:
		return f.handleChoosingOrMenu(ctx, sess, text)

	case session.AFTER_MENU:
		if text == "2" {
			sess.State = session.ASK_NAME
			return MSG_ASK_NAME_AFTER_MENU, false
		}
		return MSG_ORDER_HINT, false

	case session.ASK_NAME:
		if strings.TrimSpace(text) == "" {
			return MSG_ASK_NAME, false
		}
		sess.Order.Customer.Name = text
		sess.State = session.CHOOSING_ITEMS
		return fmt.Sprintf("Prazer, %s! Vamos ao seu pedido.\n\n", sess.Order.Customer.Name) + MSG_ITEM_FORMAT, false

	case session.CHOOSING_ITEMS:
		return f.handleChoosingItems(ctx, sess, text, lower)

	case session.ASK_ADDRESS:
		if message, valid := order.ValidateAddress(text); !valid {
			return message, false
		}
		sess.Order.Address = order.ParseAddress(text)
		sess.State = session.ASK_PAYMENT
		return MSG_ASK_PAYMENT, false

	case session.ASK_PAYMENT:
		if !order.IsPayment(lower) {
			return MSG_INVALID_PAYMENT, false
		}
		sess.Order.Payment = order.NormalizePayment(lower)
		sess.State = session.ASK_OBSERVATION
		return MSG_ASK_OBSERVATION, false

	case session.ASK_OBSERVATION:
		if !slices.Contains(noAnswers, lower) {
			sess.Order.Observation = text
		}
		sess.State = session.CONFIRMING
		return confirmationMessage(sess.Order), false

	case session.CONFIRMING:
		return f.handleConfirming(ctx, sess, lower)
	}

	// DONE never rests in the store; a stray one starts the customer over
	logger.Warning("Session found in terminal state for", sess.Order.Customer.Phone)
	return MSG_FLOW_ERROR, true
}

func (f *Flow) handleChoosingOrMenu(ctx context.Context, sess *session.Session, text string) (string, bool) {
	switch text {
	case "1":
		menu, err := f.catalog.Menu(ctx)
		if err != nil {
			logger.Warning("Error while render menu", err)
			return MSG_MENU_UNAVAILABLE, false
		}
		sess.State = session.AFTER_MENU
		return menu + "\n\n" + MSG_ORDER_HINT, false

	case "2":
		sess.State = session.ASK_NAME
		return MSG_ASK_NAME, false

	case "3":
		return MSG_CALL_HUMAN, true
	}

	return MSG_INVALID_OPTION, false
}

func (f *Flow) handleChoosingItems(ctx context.Context, sess *session.Session, text, lower string) (string, bool) {
	if lower == "finalizar" {
		if len(sess.Order.Products) == 0 {
			return MSG_NO_ITEMS, false
		}
		sess.State = session.ASK_ADDRESS
		return MSG_ASK_ADDRESS, false
	}

	flavors, err := f.catalog.ActiveFlavors(ctx)
	if err != nil {
		logger.Warning("Error while fetch catalog", err)
		return MSG_MENU_UNAVAILABLE, false
	}

	result := parser.ParseLine(text, flavors)
	switch result.Outcome {
	case parser.Rejected:
		return result.Message, false

	case parser.Parsed:
		sess.Order.Products = append(sess.Order.Products, result.Item)
		return fmt.Sprintf("Adicionei: %dx %s.\nEnvie outro item ou digite \"finalizar\".",
			result.Item.Quantity, result.Item.Name), false
	}

	return MSG_NOT_AN_ITEM, false
}

func (f *Flow) handleConfirming(ctx context.Context, sess *session.Session, lower string) (string, bool) {
	if slices.Contains(yesAnswers, lower) {
		if !sess.Order.Complete() {
			logger.Warning("Incomplete order reached confirmation:", sess.Order.Code)
			return MSG_FLOW_ERROR, true
		}

		sess.State = session.DONE

		// submission failure degrades to manual handling, the session
		// is destroyed either way
		if f.submitOrder(ctx, sess.Order) {
			return MSG_ORDER_SUCCESS, true
		}
		return MSG_ORDER_MANUAL, true
	}

	if slices.Contains(noAnswers, lower) {
		return MSG_START_OVER, true
	}

	return MSG_CONFIRM_PROMPT, false
}

func (f *Flow) submitOrder(ctx context.Context, o order.Order) bool {
	err := f.backend.CreateOrder(ctx, o)
	if err != nil {
		logger.Warning("Error while submit order", o.Code, err)

		if err = f.audit.Save(o, true); err != nil {
			logger.Warning("Error while audit order", o.Code, err)
		}
		return false
	}

	logger.Event("Order", o.Code, "submitted")

	if err = f.audit.Save(o, false); err != nil {
		logger.Warning("Error while audit order", o.Code, err)
	}
	return true
}

func confirmationMessage(o order.Order) string {
	items := make([]string, 0, len(o.Products))
	for i, item := range o.Products {
		items = append(items, fmt.Sprintf("%d) %dx %s", i+1, item.Quantity, item.Name))
	}

	return "Confere seu pedido?\n\n" +
		fmt.Sprintf("Nome: %s\n", o.Customer.Name) +
		fmt.Sprintf("Telefone: %s\n", o.Customer.Phone) +
		fmt.Sprintf("Itens:\n%s\n\n", strings.Join(items, "\n")) +
		fmt.Sprintf("Endereço: %s\n", o.Address.Flat()) +
		fmt.Sprintf("Pagamento: %s\n\n", o.Payment) +
		"Responda *sim* para confirmar ou *nao* para recomeçar."
}

func InjectFlow(key string, flow *Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, flow)
	}
}
