package bot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pizza-text-bot/internal/catalog"
	"pizza-text-bot/internal/order"
	"pizza-text-bot/internal/session"
	"pizza-text-bot/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowPhone = "557185350004"

type fakeCatalog struct {
	flavors []catalog.Flavor
	err     error
}

func (f *fakeCatalog) ActiveFlavors(_ context.Context) ([]catalog.Flavor, error) {
	return f.flavors, f.err
}

func (f *fakeCatalog) Menu(_ context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return catalog.FormatMenu(f.flavors), nil
}

type fakeBackend struct {
	fail   bool
	orders []order.Order
}

func (f *fakeBackend) CreateOrder(_ context.Context, o order.Order) error {
	if f.fail {
		return errors.New("backend down")
	}
	f.orders = append(f.orders, o)
	return nil
}

func testFlavors() []catalog.Flavor {
	return []catalog.Flavor{
		{
			UUID:     uuid.New(),
			Name:     "calabresa",
			Type:     catalog.TYPE_TRADITIONAL,
			IsActive: true,
			Prices:   catalog.Prices{Middle: 3500, Large: 4500, Family: 6000},
		},
		{
			UUID:     uuid.New(),
			Name:     "frango",
			Type:     catalog.TYPE_TRADITIONAL,
			IsActive: true,
			Prices:   catalog.Prices{Middle: 3500, Large: 4500, Family: 6000},
		},
	}
}

func newTestFlow(t *testing.T, cat *fakeCatalog, backend *fakeBackend) (*Flow, *storage.OrdersLog) {
	t.Helper()

	audit := storage.NewOrdersLog(filepath.Join(t.TempDir(), "orders-log.json"))
	return NewFlow(session.NewStore(time.Hour), cat, backend, audit), audit
}

// walk feeds messages in order and returns the last reply.
func walk(t *testing.T, flow *Flow, messages ...string) string {
	t.Helper()

	var reply string
	for _, text := range messages {
		reply = flow.HandleMessage(context.Background(), flowPhone, text)
	}
	return reply
}

func TestFirstContactWelcomes(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

	reply := flow.HandleMessage(context.Background(), flowPhone, "oi")

	assert.Equal(t, MSG_WELCOME, reply)
	assert.Equal(t, session.CHOOSING_OR_MENU, flow.Sessions().Get(flowPhone).State)
}

func TestMenuCommandKeepsState(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

	walk(t, flow, "oi", "2", "Maria")
	require.Equal(t, session.CHOOSING_ITEMS, flow.Sessions().Get(flowPhone).State)

	first := flow.HandleMessage(context.Background(), flowPhone, "cardapio")
	second := flow.HandleMessage(context.Background(), flowPhone, "cardápio")

	assert.Contains(t, first, "Pizzas Tradicionais")
	assert.Equal(t, first, second)
	assert.Equal(t, session.CHOOSING_ITEMS, flow.Sessions().Get(flowPhone).State)
}

func TestMenuCommandUnavailable(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{err: errors.New("backend down")}, &fakeBackend{})

	walk(t, flow, "oi")
	reply := flow.HandleMessage(context.Background(), flowPhone, "menu")

	assert.Equal(t, MSG_MENU_UNAVAILABLE, reply)
}

func TestCancelDestroysMidFlow(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

	walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1")
	require.NotEmpty(t, flow.Sessions().Get(flowPhone).Order.Products)

	reply := flow.HandleMessage(context.Background(), flowPhone, "cancelar")

	assert.Equal(t, MSG_CANCELLED, reply)
	fresh := flow.Sessions().Get(flowPhone)
	assert.Equal(t, session.IDLE, fresh.State)
	assert.Empty(t, fresh.Order.Products)
}

func TestChoosingOptions(t *testing.T) {
	t.Run("menu then order", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "1")
		assert.Contains(t, reply, "Pizzas Tradicionais")
		assert.Contains(t, reply, MSG_ORDER_HINT)
		assert.Equal(t, session.AFTER_MENU, flow.Sessions().Get(flowPhone).State)

		reply = flow.HandleMessage(context.Background(), flowPhone, "2")
		assert.Equal(t, MSG_ASK_NAME_AFTER_MENU, reply)
		assert.Equal(t, session.ASK_NAME, flow.Sessions().Get(flowPhone).State)
	})

	t.Run("straight to order", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "2")
		assert.Equal(t, MSG_ASK_NAME, reply)
	})

	t.Run("human handoff destroys session", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "3")
		assert.Equal(t, MSG_CALL_HUMAN, reply)
		assert.Equal(t, session.IDLE, flow.Sessions().Get(flowPhone).State)
	})

	t.Run("invalid option", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "4")
		assert.Equal(t, MSG_INVALID_OPTION, reply)
		assert.Equal(t, session.CHOOSING_OR_MENU, flow.Sessions().Get(flowPhone).State)
	})
}

func TestHappyPath(t *testing.T) {
	backend := &fakeBackend{}
	flow, audit := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, backend)

	reply := walk(t, flow, "oi", "2", "Maria")
	assert.Contains(t, reply, "Prazer, Maria!")

	reply = flow.HandleMessage(context.Background(), flowPhone, "calabresa/frango, grande, 2")
	assert.Contains(t, reply, "Adicionei: 2x Grande + Calabresa + Frango.")

	reply = flow.HandleMessage(context.Background(), flowPhone, "finalizar")
	assert.Equal(t, MSG_ASK_ADDRESS, reply)

	reply = flow.HandleMessage(context.Background(), flowPhone, "Rua das Flores, 123, Centro")
	assert.Equal(t, MSG_ASK_PAYMENT, reply)

	reply = flow.HandleMessage(context.Background(), flowPhone, "pix")
	assert.Equal(t, MSG_ASK_OBSERVATION, reply)

	reply = flow.HandleMessage(context.Background(), flowPhone, "sem cebola")
	assert.Contains(t, reply, "Confere seu pedido?")
	assert.Contains(t, reply, "Nome: Maria")
	assert.Contains(t, reply, "1) 2x Grande + Calabresa + Frango")
	assert.Contains(t, reply, "Endereço: Rua das Flores, 123, Centro")
	assert.Contains(t, reply, "Pagamento: pix")

	reply = flow.HandleMessage(context.Background(), flowPhone, "sim")
	assert.Equal(t, MSG_ORDER_SUCCESS, reply)

	require.Len(t, backend.orders, 1)
	submitted := backend.orders[0]
	assert.Equal(t, "Maria", submitted.Customer.Name)
	assert.Equal(t, flowPhone, submitted.Customer.Phone)
	assert.Equal(t, "Rua das Flores", submitted.Address.Street)
	assert.Equal(t, "sem cebola", submitted.Observation)

	records, err := audit.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].FailedToSend)
	assert.Equal(t, submitted.Code, records[0].Code)

	// confirmed order destroys the session; next message starts over
	assert.Equal(t, session.IDLE, flow.Sessions().Get(flowPhone).State)
}

func TestLeadingCommaAddressStillSubmits(t *testing.T) {
	backend := &fakeBackend{}
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, backend)

	reply := walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1", "finalizar",
		"  , Rua das Flores, 123, Centro", "pix", "não", "sim")

	assert.Equal(t, MSG_ORDER_SUCCESS, reply)
	require.Len(t, backend.orders, 1)
	assert.Equal(t, "Rua das Flores", backend.orders[0].Address.Street)
}

func TestBackendFailureDegradesToManual(t *testing.T) {
	flow, audit := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{fail: true})

	reply := walk(t, flow, "oi", "2", "Maria", "calabresa, média, 1", "finalizar",
		"Rua das Flores, 123, Centro", "dinheiro", "não", "sim")

	assert.Equal(t, MSG_ORDER_MANUAL, reply)

	records, err := audit.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].FailedToSend)

	assert.Equal(t, session.IDLE, flow.Sessions().Get(flowPhone).State)
}

func TestChoosingItems(t *testing.T) {
	t.Run("finalizar with no items", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "2", "Maria", "finalizar")
		assert.Equal(t, MSG_NO_ITEMS, reply)
		assert.Equal(t, session.CHOOSING_ITEMS, flow.Sessions().Get(flowPhone).State)
	})

	t.Run("unknown flavor rejected", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "2", "Maria", "strogonoff, grande, 1")
		assert.Contains(t, reply, "Sabor(es) não encontrado(s): Strogonoff")
		assert.Empty(t, flow.Sessions().Get(flowPhone).Order.Products)
	})

	t.Run("not an item", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "2", "Maria", "quero uma pizza")
		assert.Equal(t, MSG_NOT_AN_ITEM, reply)
	})

	t.Run("catalog down", func(t *testing.T) {
		cat := &fakeCatalog{flavors: testFlavors()}
		flow, _ := newTestFlow(t, cat, &fakeBackend{})

		walk(t, flow, "oi", "2", "Maria")
		cat.err = errors.New("backend down")

		reply := flow.HandleMessage(context.Background(), flowPhone, "calabresa, grande, 1")
		assert.Equal(t, MSG_MENU_UNAVAILABLE, reply)
	})
}

func TestInvalidAddressKeepsAsking(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

	reply := walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1", "finalizar", "rua x")
	assert.Contains(t, reply, "muito curto")
	assert.Equal(t, session.ASK_ADDRESS, flow.Sessions().Get(flowPhone).State)
}

func TestInvalidPaymentKeepsAsking(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

	reply := walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1", "finalizar",
		"Rua das Flores, 123, Centro", "cheque")
	assert.Equal(t, MSG_INVALID_PAYMENT, reply)
	assert.Equal(t, session.ASK_PAYMENT, flow.Sessions().Get(flowPhone).State)
}

func TestObservationSkip(t *testing.T) {
	backend := &fakeBackend{}
	flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, backend)

	walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1", "finalizar",
		"Rua das Flores, 123, Centro", "cartão", "não", "sim")

	require.Len(t, backend.orders, 1)
	assert.Empty(t, backend.orders[0].Observation)
	assert.Equal(t, order.PAYMENT_CARD, backend.orders[0].Payment)
}

func TestConfirming(t *testing.T) {
	t.Run("no starts over", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1", "finalizar",
			"Rua das Flores, 123, Centro", "pix", "não", "nao")

		assert.Equal(t, MSG_START_OVER, reply)
		assert.Equal(t, session.IDLE, flow.Sessions().Get(flowPhone).State)
	})

	t.Run("anything else re-prompts", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		reply := walk(t, flow, "oi", "2", "Maria", "calabresa, grande, 1", "finalizar",
			"Rua das Flores, 123, Centro", "pix", "não", "talvez")

		assert.Equal(t, MSG_CONFIRM_PROMPT, reply)
		assert.Equal(t, session.CONFIRMING, flow.Sessions().Get(flowPhone).State)
	})
}

func TestCorruptSessionResets(t *testing.T) {
	t.Run("unknown state", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		sess := flow.Sessions().Get(flowPhone)
		sess.State = "WAITING_FOR_GODOT"
		require.NoError(t, flow.Sessions().Save(flowPhone, sess))

		reply := flow.HandleMessage(context.Background(), flowPhone, "oi")

		assert.Equal(t, MSG_FLOW_ERROR, reply)
		assert.Equal(t, session.IDLE, flow.Sessions().Get(flowPhone).State)
	})

	t.Run("stray terminal state", func(t *testing.T) {
		flow, _ := newTestFlow(t, &fakeCatalog{flavors: testFlavors()}, &fakeBackend{})

		sess := flow.Sessions().Get(flowPhone)
		sess.State = session.DONE
		require.NoError(t, flow.Sessions().Save(flowPhone, sess))

		reply := flow.HandleMessage(context.Background(), flowPhone, "oi")

		assert.Equal(t, MSG_FLOW_ERROR, reply)
		assert.Equal(t, session.IDLE, flow.Sessions().Get(flowPhone).State)
	})
}
