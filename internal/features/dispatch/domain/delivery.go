package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DeliveryStatus is the lifecycle stage of a delivery.
type DeliveryStatus int

const (
	StatusPending    DeliveryStatus = 0
	StatusInProgress DeliveryStatus = 1
	StatusCompleted  DeliveryStatus = 2
)

// Valid reports whether s is a known status.
func (s DeliveryStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

func (s DeliveryStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// PaymentMethod is how the customer pays for a delivery.
type PaymentMethod int

const (
	PaymentCash           PaymentMethod = 1
	PaymentCooperativePix PaymentMethod = 2
	PaymentTab            PaymentMethod = 3
	PaymentCourierPix     PaymentMethod = 4
)

// PaymentMethods lists the methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCooperativePix, PaymentTab, PaymentCourierPix}

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentCash && m <= PaymentCourierPix
}

// Label is the name shown to staff.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Dinheiro"
	case PaymentCooperativePix:
		return "PIX da Cooperativa"
	case PaymentTab:
		return "Comanda"
	case PaymentCourierPix:
		return "Pix do Motoboy"
	default:
		return ""
	}
}

// Delivery is a dispatch job as listed by the console.
type Delivery struct {
	ID             int64           `json:"id"`
	PersonID       int64           `json:"id_pessoa"`
	CustomerName   string          `json:"nome_cliente"`
	PickupAddress  string          `json:"endereco_retirada"`
	DropoffAddress string          `json:"endereco_entrega"`
	Description    string          `json:"descricao"`
	Value          decimal.Decimal `json:"vr_calculado"`
	PaymentMethod  PaymentMethod   `json:"id_forma_pgto"`
	Status         DeliveryStatus  `json:"status"`
	CourierID      *int64          `json:"id_motoqueiro"`
	CreatedBy      *string         `json:"id_usuario_inclusao"`
	CreatedAt      Timestamp       `json:"created_at"`
}

// Clone returns a copy that shares no pointers with d.
func (d Delivery) Clone() Delivery {
	if d.CourierID != nil {
		id := *d.CourierID
		d.CourierID = &id
	}
	if d.CreatedBy != nil {
		by := *d.CreatedBy
		d.CreatedBy = &by
	}
	return d
}

// AssignCourier moves the delivery to in-progress with courierID.
func (d *Delivery) AssignCourier(courierID int64) {
	d.Status = StatusInProgress
	d.CourierID = &courierID
}

// FilterByCustomer keeps deliveries whose customer name contains term,
// case-insensitively. An empty term keeps everything. The input is not modified.
func FilterByCustomer(deliveries []Delivery, term string) []Delivery {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if term == "" || strings.Contains(strings.ToLower(d.CustomerName), term) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// FormatBRL renders v as Brazilian currency, e.g. "R$ 1.234,50".
func FormatBRL(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	fixed := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	return sign + "R$ " + sb.String() + "," + frac
}
