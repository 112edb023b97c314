package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"undulcito/internal/domain/cart"
	"undulcito/internal/domain/entity"
)

// CheckoutDelayMS is how long the storefront plays its confetti before
// following the WhatsApp link.
const CheckoutDelayMS = 800

const (
	whatsappBaseURL = "https://wa.me/"
	checkoutClosing = "\n\nQuedo atento para coordinar el pago y la entrega. ¡Gracias!"
)

type CheckoutResult struct {
	Message string `json:"message"`
	Link    string `json:"link"`
	DelayMS int    `json:"delay_ms"`
}

// CheckoutComposer turns a cart into a WhatsApp order message for the merchant.
type CheckoutComposer struct {
	storeName     string
	merchantPhone string
}

func NewCheckoutComposer(storeName, merchantPhone string) *CheckoutComposer {
	return &CheckoutComposer{
		storeName:     storeName,
		merchantPhone: merchantPhone,
	}
}

func (c *CheckoutComposer) Compose(items []cart.Item, total decimal.Decimal, rate entity.RateResult) CheckoutResult {
	message := c.Message(items, total, rate)
	return CheckoutResult{
		Message: message,
		Link:    c.Link(message),
		DelayMS: CheckoutDelayMS,
	}
}

func (c *CheckoutComposer) Message(items []cart.Item, total decimal.Decimal, rate entity.RateResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "¡Hola %s! 🧁\nQuisiera realizar el siguiente pedido:\n\n", c.storeName)
	for _, item := range items {
		fmt.Fprintf(&b, "▪️ %dx %s - $%s\n", item.Quantity, item.Name, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*TOTAL A PAGAR: $%s*", total.StringFixed(2))

	if converted, ok := ConvertToBolivars(total, rate); ok {
		fmt.Fprintf(&b, "\n(Bs. %s a tasa %s)", converted.StringFixed(2), decimal.NewFromFloat(rate.Quote.Rate).StringFixed(2))
	}

	b.WriteString(checkoutClosing)
	return b.String()
}

// Link builds the wa.me deep link. Spaces are encoded as %20, not "+".
func (c *CheckoutComposer) Link(message string) string {
	return whatsappBaseURL + c.merchantPhone + "?text=" + encodeMessage(message)
}

func encodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// ConvertToBolivars applies a fetched rate to a dollar amount.
func ConvertToBolivars(amount decimal.Decimal, rate entity.RateResult) (decimal.Decimal, bool) {
	if !rate.OK || rate.Quote.Rate <= 0 {
		return decimal.Zero, false
	}
	return amount.Mul(decimal.NewFromFloat(rate.Quote.Rate)).Round(2), true
}
