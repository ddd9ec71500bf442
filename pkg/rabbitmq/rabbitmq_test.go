package rabbitmq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderEvent_RoundTrip(t *testing.T) {
	ev := NewOrderEvent(RoutingOrderCreated, 7, "BT-K7M2QX", "pending")
	ev.Total = "£137"
	assert.NotEmpty(t, ev.ID)

	body, err := json.Marshal(ev)
	require.NoError(t, err)

	got, err := DecodeOrderEvent(body)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, "order.created", got.Type)
	assert.EqualValues(t, 7, got.OrderID)
	assert.Equal(t, "£137", got.Total)
}

func TestDecodeOrderEvent_Rejects(t *testing.T) {
	_, err := DecodeOrderEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeOrderEvent([]byte(`{"type":"order.created"}`))
	assert.ErrorContains(t, err, "missing")
}

func TestPublish_WithoutChannel(t *testing.T) {
	c := &Client{}
	assert.Error(t, c.Publish(ExchangeOrders, RoutingOrderCreated, []byte("{}")))
	assert.Error(t, c.ConsumeOrderEvents(nil))
	assert.NoError(t, c.Close())
}
