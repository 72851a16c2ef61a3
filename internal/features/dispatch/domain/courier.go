package domain

import (
	"strings"
	"unicode"
)

const whatsAppURL = "https://api.whatsapp.com/send?phone="

// Courier is a delivery agent ("motoboy"). Only active couriers receive deliveries.
type Courier struct {
	ID         int64  `json:"id"`
	Name       string `json:"nome"`
	Phone      string `json:"celular"`
	Email      string `json:"enail"`
	BirthDate  string `json:"dt_nascimento"`
	PostalCode string `json:"cep"`
	Address    string `json:"endereco"`
	Number     string `json:"numero"`
	Notes      string `json:"obs"`
	Active     bool   `json:"ativo"`
}

// CourierColumns is the projection loaded into the roster.
var CourierColumns = []string{"id", "nome", "celular", "enail", "dt_nascimento", "cep", "endereco", "numero", "obs", "ativo"}

// MaskedPhone renders the phone as (XX) XXXXX-XXXX when it has enough digits.
func (c Courier) MaskedPhone() string {
	return MaskPhone(c.Phone)
}

// WhatsAppLink is the click-to-chat URL for the courier's phone.
func (c Courier) WhatsAppLink() string {
	return whatsAppURL + Digits(c.Phone)
}

// MaskPhone formats the first 11 digits of phone as (XX) XXXXX-XXXX.
// Shorter numbers are returned as bare digits.
func MaskPhone(phone string) string {
	d := Digits(phone)
	if len(d) < 11 {
		return d
	}
	return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:11] + d[11:]
}

// Digits strips everything but decimal digits.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// FilterCouriers keeps couriers whose name contains term, case-insensitively.
func FilterCouriers(couriers []Courier, term string) []Courier {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Courier, 0, len(couriers))
	for _, c := range couriers {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}
