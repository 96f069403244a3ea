package analytics

// ProductSales is the total quantity ordered for one product name.
type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Analytics summarises all orders.
type Analytics struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalSales   float64        `json:"totalSales"`
	StatusCount  map[string]int `json:"statusCount"`
	TopProducts  []ProductSales `json:"topProducts"`
	DisplaySales int64          `json:"displaySales"`
	Currency     string         `json:"currency"`
	Rate         float64        `json:"rate"`
}
