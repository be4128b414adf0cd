package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// loyaltyMonthDays aproximación comercial del mes: 30 días fijos, no calendario.
const loyaltyMonthDays = 30

// SaleUseCase ciclo de vida de las ventas: CRUD, transición de estado y comisión.
// Todas las operaciones reciben el usuario autenticado (actor) para aplicar la
// política de propiedad; los gates por rol puro viven en el middleware HTTP.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo}
}

// ListQuery filtros opcionales de GET /sales.
type ListQuery struct {
	Status   string
	Category string
	SellerID string
	Search   string
}

// Create registra una venta nueva. El actor queda como vendedor (snapshot de
// id y nombre) y el estado inicial siempre es "negotiating".
func (uc *SaleUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.ClientName == "" || in.Partner == "" || !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleType != nil && !entity.ValidSaleType(*in.SaleType) {
		return nil, domain.ErrInvalidInput
	}
	if in.ContractValue < 0 || in.LoyaltyMonths < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientPhone:   in.ClientPhone,
		ClientNIF:     in.ClientNIF,
		Category:      in.Category,
		SaleType:      in.SaleType,
		Partner:       in.Partner,
		ContractValue: in.ContractValue,
		LoyaltyMonths: in.LoyaltyMonths,
		Notes:         in.Notes,
		Status:        entity.StatusNegotiating,
		SellerID:      actor.ID,
		SellerName:    actor.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// List devuelve las ventas visibles para el actor, ordenadas de la más
// reciente a la más antigua. Para un salesperson el scope manda: el filtro
// seller_id del cliente se ignora.
func (uc *SaleUseCase) List(ctx context.Context, actor *entity.User, q ListQuery) ([]*entity.Sale, error) {
	if q.Status != "" && !entity.ValidStatus(q.Status) {
		return nil, domain.ErrInvalidInput
	}
	if q.Category != "" && !entity.ValidCategory(q.Category) {
		return nil, domain.ErrInvalidInput
	}
	scope := domain.ScopeForUser(actor)
	f := repository.SaleFilter{
		Scope:    scope,
		Status:   q.Status,
		Category: q.Category,
		Search:   q.Search,
	}
	if scope.Unrestricted() {
		f.SellerID = q.SellerID
	}
	return uc.saleRepo.List(ctx, f)
}

// Get devuelve una venta por id. Un salesperson solo puede ver las propias.
func (uc *SaleUseCase) Get(ctx context.Context, actor *entity.User, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if !domain.CanMutateSale(actor, sale) {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// Update aplica un parche parcial sobre la venta.
//
// Efecto colateral de la transición a "active" desde cualquier otro estado:
// active_date = ahora y, si la venta ya tenía loyalty_months > 0 (el valor
// previo al parche), loyalty_end_date = ahora + loyalty_months * 30 días.
// Repetir el guardado de una venta ya active no toca esas fechas.
func (uc *SaleUseCase) Update(ctx context.Context, actor *entity.User, id string, patch dto.UpdateSaleRequest) (*entity.Sale, error) {
	if patch.Status != nil && !entity.ValidStatus(*patch.Status) {
		return nil, domain.ErrInvalidInput
	}
	if patch.Category != nil && !entity.ValidCategory(*patch.Category) {
		return nil, domain.ErrInvalidInput
	}
	if patch.SaleType != nil && !entity.ValidSaleType(*patch.SaleType) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrSaleNotFound
	}
	if !domain.CanMutateSale(actor, existing) {
		return nil, domain.ErrForbidden
	}

	merged := applyPatch(existing, patch, time.Now().UTC())
	if err := uc.saleRepo.Update(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete elimina la venta (el gate admin/backoffice está en el router).
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.saleRepo.Delete(ctx, id)
}

// AssignCommission asigna la comisión a la venta. Los tres campos de comisión
// se escriben siempre juntos; el monto no se valida (puede ser negativo).
func (uc *SaleUseCase) AssignCommission(ctx context.Context, actor *entity.User, id string, amount float64) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	now := time.Now().UTC()
	sale.Commission = &amount
	sale.CommissionAssignedBy = &actor.Name
	sale.CommissionAssignedAt = &now
	sale.UpdatedAt = now
	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// applyPatch mezcla los campos presentes del parche sobre la venta existente
// y aplica el efecto colateral de la activación. Devuelve una copia; no muta
// el registro recibido.
func applyPatch(existing *entity.Sale, patch dto.UpdateSaleRequest, now time.Time) *entity.Sale {
	merged := *existing

	if patch.ClientName != nil {
		merged.ClientName = *patch.ClientName
	}
	if patch.ClientEmail != nil {
		merged.ClientEmail = patch.ClientEmail
	}
	if patch.ClientPhone != nil {
		merged.ClientPhone = patch.ClientPhone
	}
	if patch.ClientNIF != nil {
		merged.ClientNIF = patch.ClientNIF
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.SaleType != nil {
		merged.SaleType = patch.SaleType
	}
	if patch.Partner != nil {
		merged.Partner = *patch.Partner
	}
	if patch.ContractValue != nil {
		merged.ContractValue = *patch.ContractValue
	}
	if patch.LoyaltyMonths != nil {
		merged.LoyaltyMonths = *patch.LoyaltyMonths
	}
	if patch.Notes != nil {
		merged.Notes = patch.Notes
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	merged.UpdatedAt = now

	// La fidelización se calcula con los meses que la venta tenía ANTES del
	// parche, igual que el cálculo histórico del negocio.
	if patch.Status != nil && *patch.Status == entity.StatusActive && existing.Status != entity.StatusActive {
		activeDate := now
		merged.ActiveDate = &activeDate
		if existing.LoyaltyMonths > 0 {
			end := activeDate.AddDate(0, 0, existing.LoyaltyMonths*loyaltyMonthDays)
			merged.LoyaltyEndDate = &end
		}
	}
	return &merged
}
