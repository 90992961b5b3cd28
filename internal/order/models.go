package order

import "time"

// Status tracks an order through payment verification.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Order is a booked decoration job: client, event, chosen package, and the
// payment-verification state the admin staff manages.
type Order struct {
	ID          int64     `json:"id"`
	ClientName  string    `json:"client_name"`
	EventDate   time.Time `json:"event_date"`
	PackageName string    `json:"package_name"`
	Venue       string    `json:"venue"`
	TotalAmount int64     `json:"total_amount"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaymentProof is an uploaded transfer receipt attached to an order.
type PaymentProof struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
