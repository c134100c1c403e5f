package httpserver

import (
	"shipmart-be/internal/correction"
	"shipmart-be/internal/order"
	"shipmart-be/internal/payment"
)

type itemResponse struct {
	ID          int64    `json:"id"`
	ProductName string   `json:"productName"`
	ProductLink string   `json:"productLink"`
	Color       string   `json:"color"`
	Size        string   `json:"size"`
	Quantity    int      `json:"quantity"`
	Price       string   `json:"price"`
	FinalPrice  string   `json:"finalPrice"`
	Status      string   `json:"status"`
	SourceType  string   `json:"sourceType"`
	DenyReasons []string `json:"denyReasons"`
	Accepted    bool     `json:"accepted"`
}

type viewResponse struct {
	OrderID      int64          `json:"orderId"`
	State        string         `json:"state"`
	Currency     string         `json:"currency"`
	PaidTotal    string         `json:"paidTotal"`
	CurrentTotal string         `json:"currentTotal"`
	PriceDelta   string         `json:"priceDelta"`
	Items        []itemResponse `json:"items"`
}

type confirmResponse struct {
	State   string           `json:"state"`
	Total   string           `json:"total"`
	Delta   string           `json:"delta"`
	Payment *paymentResponse `json:"payment,omitempty"`
}

type paymentResponse struct {
	OrderID     int64  `json:"orderId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	ReferenceID string `json:"referenceId"`
}

func toItemResponse(it order.OrderItem) itemResponse {
	reasons := make([]string, 0, len(it.DenyReasons))
	for _, r := range it.DenyReasons {
		reasons = append(reasons, string(r))
	}

	return itemResponse{
		ID:          it.ID,
		ProductName: it.ProductName,
		ProductLink: it.ProductLink,
		Color:       it.Color,
		Size:        it.Size,
		Quantity:    it.Quantity,
		Price:       it.Price.String(),
		FinalPrice:  it.FinalPrice.String(),
		Status:      string(it.Status),
		SourceType:  string(it.SourceType),
		DenyReasons: reasons,
		Accepted:    it.Accepted(),
	}
}

func toViewResponse(s *correction.Session) viewResponse {
	view := s.View()
	total, delta := s.Totals()

	items := make([]itemResponse, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, toItemResponse(it))
	}

	return viewResponse{
		OrderID:      view.ID,
		State:        string(s.State()),
		Currency:     view.Currency,
		PaidTotal:    view.TotalPrice.String(),
		CurrentTotal: total.String(),
		PriceDelta:   delta.String(),
		Items:        items,
	}
}

func toConfirmResponse(out *correction.Outcome) confirmResponse {
	resp := confirmResponse{
		State: string(out.State),
		Total: out.Total.String(),
		Delta: out.Delta.String(),
	}
	if out.Payment != nil {
		resp.Payment = toPaymentResponse(out.Payment)
	}
	return resp
}

func toPaymentResponse(p *payment.PendingPayment) *paymentResponse {
	return &paymentResponse{
		OrderID:     p.OrderID,
		Amount:      p.Amount.String(),
		Currency:    p.Currency,
		ReferenceID: p.ReferenceID,
	}
}
