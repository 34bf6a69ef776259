package signup

type PaymentMethod struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Note   string `json:"note"`
}

var paymentMethodDefaults = []PaymentMethod{
	{Key: "cashapp", Title: "Cash App", Note: "Send payment to Cash App"},
	{Key: "venmo", Title: "Venmo", Note: "Click to open Venmo"},
	{Key: "zelle", Title: "Zelle", Note: "Send via phone number or email"},
	{Key: "paypal", Title: "PayPal", Note: "Send payment to PayPal email"},
	{Key: "inperson", Title: "In Person", Handle: "Pay at the court", Note: "Bring cash or card to the game"},
}

// BuildPaymentMethods returns the payment options in display order with the
// configured account handles filled in. An empty handle keeps the default.
func BuildPaymentMethods(handles map[string]string) []PaymentMethod {
	methods := make([]PaymentMethod, 0, len(paymentMethodDefaults))
	for _, m := range paymentMethodDefaults {
		if h := handles[m.Key]; h != "" {
			m.Handle = h
		}
		methods = append(methods, m)
	}
	return methods
}

func paymentTitle(methods []PaymentMethod, key string) string {
	for _, m := range methods {
		if m.Key == key {
			return m.Title
		}
	}
	return key
}
