package payment

import (
	"fmt"
	"sync/atomic"
	"time"

	"urban-turban/internal/model"
)

// Provider identifies a payment provider. Everything except COD is a mock
// gateway that always succeeds.
type Provider string

const (
	ProviderCOD          Provider = "cod"
	ProviderUPIMock      Provider = "upi_mock"
	ProviderRazorpayMock Provider = "razorpay_mock"
	ProviderStripeMock   Provider = "stripe_mock"
)

// Outcome is what checking out with a given provider produces: the initial
// order status, whether a payment row is recorded, and how to mint the
// external reference. Adding a real gateway means adding an Outcome, not
// touching the order-creation sequence.
type Outcome struct {
	OrderStatus   model.OrderStatus
	RecordPayment bool
	PaymentStatus model.PaymentStatus
	NewExternalID func() string
}

// refSeq disambiguates external references minted within the same
// millisecond.
var refSeq atomic.Uint64

func externalRef(p Provider) string {
	return fmt.Sprintf("mock_%s_%d_%d", p, time.Now().UnixMilli(), refSeq.Add(1))
}

// Resolve maps a provider tag to its checkout outcome. Unknown providers are
// a validation error.
func Resolve(provider string) (Outcome, error) {
	switch Provider(provider) {
	case ProviderCOD:
		return Outcome{
			OrderStatus:   model.OrderStatusPending,
			RecordPayment: false,
		}, nil
	case ProviderUPIMock, ProviderRazorpayMock, ProviderStripeMock:
		p := Provider(provider)
		return Outcome{
			OrderStatus:   model.OrderStatusPaid,
			RecordPayment: true,
			PaymentStatus: model.PaymentStatusSuccess,
			NewExternalID: func() string { return externalRef(p) },
		}, nil
	default:
		return Outcome{}, model.NewValidationError(
			fmt.Sprintf("Unknown payment provider: %s", provider), "paymentProvider")
	}
}
