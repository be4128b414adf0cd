package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre la colección `sales`.
type SaleRepo struct {
	coll *mongo.Collection
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(db *mongo.Database) *SaleRepo {
	return &SaleRepo{coll: db.Collection("sales")}
}

// Create persiste una venta nueva.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if _, err := r.coll.InsertOne(ctx, sale); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por id lógico. (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update reemplaza el documento completo (last-write-wins).
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": sale.ID}, sale)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// Delete elimina la venta. ErrSaleNotFound si el id no existe.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// List devuelve las ventas que cumplen el filtro, de la más reciente a la más
// antigua, con techo ListLimit.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	query := scopeFilter(f.Scope)
	if f.Scope.Unrestricted() && f.SellerID != "" {
		query["seller_id"] = f.SellerID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Search != "" {
		// Subcadena literal case-insensitive; QuoteMeta evita que el término
		// del usuario se interprete como sintaxis de regex.
		pattern := regexp.QuoteMeta(f.Search)
		query["$or"] = bson.A{
			bson.M{"client_name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"client_nif": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"partner": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	return r.find(ctx, query, repository.ListLimit)
}

// ListForReport devuelve las ventas del reporte. El rango de created_at es
// inclusivo en ambos extremos; techo ReportLimit.
func (r *SaleRepo) ListForReport(ctx context.Context, f repository.ReportFilter) ([]*entity.Sale, error) {
	query := bson.M{}
	if f.StartDate != nil || f.EndDate != nil {
		created := bson.M{}
		if f.StartDate != nil {
			created["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			created["$lte"] = *f.EndDate
		}
		query["created_at"] = created
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.SellerID != "" {
		query["seller_id"] = f.SellerID
	}
	return r.find(ctx, query, repository.ReportLimit)
}

func (r *SaleRepo) find(ctx context.Context, query bson.M, limit int64) ([]*entity.Sale, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}
	var sales []*entity.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return sales, nil
}

// scopeFilter traduce el scope de autorización al filtro base de la consulta.
func scopeFilter(scope domain.Scope) bson.M {
	if scope.Unrestricted() {
		return bson.M{}
	}
	return bson.M{"seller_id": scope.SellerID}
}
