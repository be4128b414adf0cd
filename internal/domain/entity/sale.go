package entity

import "time"

// Estados de una venta. Toda venta nace en StatusNegotiating y solo cambia
// por una actualización explícita.
const (
	StatusNegotiating = "negotiating"
	StatusLost        = "lost"
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusAnnulled    = "annulled"
)

// Categorías de contrato.
const (
	CategoryEnergy  = "energy"
	CategoryTelecom = "telecom"
	CategorySolar   = "solar"
)

// Tipos de venta.
const (
	SaleTypeNewInstall  = "new_install"
	SaleTypeReferenceID = "reference_id"
)

// ValidStatus indica si el string corresponde a un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case StatusNegotiating, StatusLost, StatusPending, StatusActive, StatusAnnulled:
		return true
	}
	return false
}

// ValidCategory indica si el string corresponde a una categoría conocida.
func ValidCategory(s string) bool {
	switch s {
	case CategoryEnergy, CategoryTelecom, CategorySolar:
		return true
	}
	return false
}

// ValidSaleType indica si el string corresponde a un tipo de venta conocido.
func ValidSaleType(s string) bool {
	return s == SaleTypeNewInstall || s == SaleTypeReferenceID
}

// Sale representa un contrato comercial (energía, telecomunicaciones o paneles solares).
//
// SellerName es una copia desnormalizada del nombre del vendedor capturada al
// crear la venta; no se sincroniza con cambios posteriores del usuario.
// Los campos opcionales son punteros: nil = sin valor (null en persistencia y JSON).
type Sale struct {
	ID            string  `bson:"id" json:"id"`
	ClientName    string  `bson:"client_name" json:"client_name"`
	ClientEmail   *string `bson:"client_email" json:"client_email"`
	ClientPhone   *string `bson:"client_phone" json:"client_phone"`
	ClientNIF     *string `bson:"client_nif" json:"client_nif"`
	Category      string  `bson:"category" json:"category"`
	SaleType      *string `bson:"sale_type" json:"sale_type"`
	Partner       string  `bson:"partner" json:"partner"`
	ContractValue float64 `bson:"contract_value" json:"contract_value"`
	LoyaltyMonths int     `bson:"loyalty_months" json:"loyalty_months"`
	Notes         *string `bson:"notes" json:"notes"`

	Status     string `bson:"status" json:"status"`
	SellerID   string `bson:"seller_id" json:"seller_id"`
	SellerName string `bson:"seller_name" json:"seller_name"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// ActiveDate y LoyaltyEndDate se fijan al transicionar a "active" y no se
	// recalculan en ediciones posteriores salvo una nueva transición a "active".
	ActiveDate     *time.Time `bson:"active_date" json:"active_date"`
	LoyaltyEndDate *time.Time `bson:"loyalty_end_date" json:"loyalty_end_date"`

	// Comisión: los tres campos se asignan siempre juntos.
	Commission           *float64   `bson:"commission" json:"commission"`
	CommissionAssignedBy *string    `bson:"commission_assigned_by" json:"commission_assigned_by"`
	CommissionAssignedAt *time.Time `bson:"commission_assigned_at" json:"commission_assigned_at"`
}

// HasCommission indica si la venta ya tiene comisión asignada.
func (s *Sale) HasCommission() bool {
	return s.Commission != nil
}
