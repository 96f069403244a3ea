package payment

// Link describes how to pay an order through a UPI app.
type Link struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	UPIID    string `json:"upiId"`
	UPIURI   string `json:"upiUri"`
	QRURL    string `json:"qrUrl"`
}
