package dto

// CreateSaleRequest entrada para crear una venta. El vendedor es el usuario
// autenticado; el estado inicial siempre es "negotiating".
type CreateSaleRequest struct {
	ClientName    string  `json:"client_name"`
	ClientEmail   *string `json:"client_email"`
	ClientPhone   *string `json:"client_phone"`
	ClientNIF     *string `json:"client_nif"`
	Category      string  `json:"category"` // energy, telecom, solar
	SaleType      *string `json:"sale_type"`
	Partner       string  `json:"partner"`
	ContractValue float64 `json:"contract_value"`
	LoyaltyMonths int     `json:"loyalty_months"`
	Notes         *string `json:"notes"`
}

// UpdateSaleRequest parche parcial de una venta: solo los campos presentes
// (no nil) se aplican sobre el registro existente.
type UpdateSaleRequest struct {
	ClientName    *string  `json:"client_name"`
	ClientEmail   *string  `json:"client_email"`
	ClientPhone   *string  `json:"client_phone"`
	ClientNIF     *string  `json:"client_nif"`
	Category      *string  `json:"category"`
	SaleType      *string  `json:"sale_type"`
	Partner       *string  `json:"partner"`
	ContractValue *float64 `json:"contract_value"`
	LoyaltyMonths *int     `json:"loyalty_months"`
	Notes         *string  `json:"notes"`
	Status        *string  `json:"status"`
}

// CommissionRequest entrada para asignar comisión (admin/backoffice).
// El monto no se valida a propósito: el negocio admite ajustes negativos.
type CommissionRequest struct {
	Commission float64 `json:"commission"`
}
