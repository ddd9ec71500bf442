package notify

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfirmation() OrderConfirmation {
	return OrderConfirmation{
		OrderRef:     "BT-K7M2QX",
		BuyerName:    "Ada <Lovelace>",
		BuyerEmail:   "ada@example.com",
		ItemTitle:    "Harbour at Dusk",
		ItemDetails:  "Canvas Inkjet · 60×80cm",
		ItemPrice:    "£125",
		ZoneLabel:    "UK",
		ShippingCost: "£12",
		Total:        "£137",
		Address:      []string{"1 Quay St", "Bristol", "BS1 1AA", "United Kingdom"},
	}
}

func TestRenderOrderConfirmation(t *testing.T) {
	c := sampleConfirmation()
	c.ShopName = "Benjamin Thomas Art"
	c.ContactPhone = "+44 7000 000000"

	msg, err := RenderOrderConfirmation(c)
	require.NoError(t, err)

	assert.Equal(t, "Order confirmation — BT-K7M2QX", msg.Subject)
	assert.Contains(t, msg.Text, "Delivery (UK): £12")
	assert.Contains(t, msg.Text, "Total: £137")
	assert.Contains(t, msg.Text, "Shipping to:\n1 Quay St\nBristol\nBS1 1AA\nUnited Kingdom\n")
	assert.Contains(t, msg.Text, "WhatsApp at +44 7000 000000")

	assert.Contains(t, msg.HTML, "1 Quay St<br>Bristol<br>BS1 1AA<br>United Kingdom")
	assert.Contains(t, msg.HTML, "Ada &lt;Lovelace&gt;", "buyer input is escaped")
	assert.NotContains(t, msg.HTML, "<Lovelace>")
}

func TestRenderOrderConfirmation_NoPhone(t *testing.T) {
	msg, err := RenderOrderConfirmation(sampleConfirmation())
	require.NoError(t, err)
	assert.NotContains(t, msg.Text, "WhatsApp")
	assert.Contains(t, msg.Text, "If you have any questions, reply to this email.")
}

func TestSMTPMailer_SendOrderConfirmation(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{From: "shop@example.com", FromName: "Benjamin Thomas Art"})

	var gotFrom string
	var gotTo []string
	var raw []byte
	m.send = func(_ context.Context, from string, to []string, msg []byte) error {
		gotFrom, gotTo, raw = from, to, msg
		return nil
	}

	require.NoError(t, m.SendOrderConfirmation(context.Background(), sampleConfirmation()))
	assert.Equal(t, "shop@example.com", gotFrom)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)

	parsed, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Order confirmation — BT-K7M2QX", subject)

	from, err := parsed.Header.AddressList("From")
	require.NoError(t, err)
	assert.Equal(t, "Benjamin Thomas Art", from[0].Name)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var types []string
	var bodies []string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		// multipart.Reader decodes quoted-printable transparently.
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		types = append(types, p.Header.Get("Content-Type"))
		bodies = append(bodies, string(b))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], "Total: £137")
	assert.Contains(t, bodies[1], "Order confirmed")
}

func TestSMTPMailer_PropagatesSendError(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{From: "shop@example.com"})
	m.send = func(context.Context, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	err := m.SendOrderConfirmation(context.Background(), sampleConfirmation())
	assert.ErrorContains(t, err, "BT-K7M2QX")
	assert.ErrorContains(t, err, "connection refused")
}
