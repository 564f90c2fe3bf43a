package entity

import "time"

// Client representa un cliente. El libro de ventas solo lo referencia.
type Client struct {
	ID        string
	Name      string
	TaxID     string // NIT o documento
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
