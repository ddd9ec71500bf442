package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// OrderConfirmation is everything the buyer's confirmation email shows.
type OrderConfirmation struct {
	OrderRef     string
	BuyerName    string
	BuyerEmail   string
	ItemTitle    string
	ItemDetails  string
	ItemPrice    string
	ZoneLabel    string
	ShippingCost string
	Total        string
	Address      []string
	ContactPhone string
	ShopName     string
}

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f5f3f0;font-family:Georgia,'Times New Roman',serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f5f3f0;padding:40px 20px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border:1px solid #e5e5e5;">
        <tr><td style="padding:32px 40px 24px;border-bottom:1px solid #e5e5e5;">
          <h1 style="margin:0;font-size:24px;font-weight:normal;color:#003153;">{{.ShopName}}</h1>
        </td></tr>
        <tr><td style="padding:32px 40px 16px;">
          <h2 style="margin:0 0 8px;font-size:20px;font-weight:normal;color:#003153;">Order confirmed</h2>
          <p style="margin:0;font-size:14px;color:#666;line-height:1.6;">
            Thank you for your order, {{.BuyerName}}. Your order reference is <strong style="color:#003153;">{{.OrderRef}}</strong>.
          </p>
        </td></tr>
        <tr><td style="padding:16px 40px;">
          <table width="100%" cellpadding="0" cellspacing="0" style="border:1px solid #e5e5e5;">
            <tr><td style="padding:16px;border-bottom:1px solid #e5e5e5;background-color:#fafaf8;">
              <p style="margin:0 0 4px;font-size:12px;color:#888;text-transform:uppercase;">Item</p>
              <p style="margin:0;font-size:15px;color:#333;">'{{.ItemTitle}}'</p>
              <p style="margin:4px 0 0;font-size:13px;color:#666;">{{.ItemDetails}}</p>
            </td></tr>
            <tr><td style="padding:12px 16px;border-bottom:1px solid #e5e5e5;font-size:13px;color:#666;">
              Item price <span style="float:right;color:#333;">{{.ItemPrice}}</span>
            </td></tr>
            <tr><td style="padding:12px 16px;border-bottom:1px solid #e5e5e5;font-size:13px;color:#666;">
              Delivery ({{.ZoneLabel}}) <span style="float:right;color:#333;">{{.ShippingCost}}</span>
            </td></tr>
            <tr><td style="padding:12px 16px;background-color:#fafaf8;font-size:14px;font-weight:bold;color:#003153;">
              Total <span style="float:right;">{{.Total}}</span>
            </td></tr>
          </table>
        </td></tr>
        <tr><td style="padding:16px 40px;">
          <p style="margin:0 0 8px;font-size:12px;color:#888;text-transform:uppercase;">Shipping to</p>
          <p style="margin:0;font-size:14px;color:#333;line-height:1.6;">
            {{range $i, $line := .Address}}{{if $i}}<br>{{end}}{{$line}}{{end}}
          </p>
        </td></tr>
        <tr><td style="padding:16px 40px 32px;">
          <div style="padding:16px;background-color:#f0f7ff;border:1px solid #d0e3f0;border-radius:4px;font-size:13px;color:#003153;line-height:1.6;">
            Please include your order reference <strong>{{.OrderRef}}</strong> in the PayPal payment note so we can match your payment to this order. Once payment is confirmed, we'll begin preparing your artwork for dispatch.
          </div>
        </td></tr>
        <tr><td style="padding:24px 40px;border-top:1px solid #e5e5e5;background-color:#fafaf8;font-size:12px;color:#888;line-height:1.6;">
          If you have any questions about your order, please reply to this email{{if .ContactPhone}} or get in touch via WhatsApp at {{.ContactPhone}}{{end}}.
          <p style="margin:12px 0 0;color:#aaa;">&copy; {{.ShopName}}</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(`Order Confirmation — {{.OrderRef}}

Thank you for your order, {{.BuyerName}}.

Order Reference: {{.OrderRef}}

Item: '{{.ItemTitle}}'
Details: {{.ItemDetails}}
Item price: {{.ItemPrice}}
Delivery ({{.ZoneLabel}}): {{.ShippingCost}}
Total: {{.Total}}

Shipping to:
{{range .Address}}{{.}}
{{end}}
Please include your order reference {{.OrderRef}} in the PayPal payment note so we can match your payment to this order. Once payment is confirmed, we'll begin preparing your artwork for dispatch.

If you have any questions, reply to this email{{if .ContactPhone}} or contact via WhatsApp at {{.ContactPhone}}{{end}}.

{{.ShopName}}
`))

// RenderOrderConfirmation builds the subject and both bodies.
func RenderOrderConfirmation(c OrderConfirmation) (Message, error) {
	var html, text bytes.Buffer
	if err := confirmationHTML.Execute(&html, c); err != nil {
		return Message{}, fmt.Errorf("render confirmation html: %w", err)
	}
	if err := confirmationText.Execute(&text, c); err != nil {
		return Message{}, fmt.Errorf("render confirmation text: %w", err)
	}
	return Message{
		Subject: "Order confirmation — " + c.OrderRef,
		Text:    strings.TrimSpace(text.String()),
		HTML:    html.String(),
	}, nil
}
