package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de dashboard sobre la colección `sales`.
type AnalyticsRepo struct {
	coll *mongo.Collection
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepo {
	return &AnalyticsRepo{coll: db.Collection("sales")}
}

// CountSales total de ventas dentro del scope.
func (r *AnalyticsRepo) CountSales(ctx context.Context, scope domain.Scope) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, scopeFilter(scope))
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// CountByStatus conteo agrupado por estado.
func (r *AnalyticsRepo) CountByStatus(ctx context.Context, scope domain.Scope) (map[string]int64, error) {
	return r.groupCount(ctx, scope, "$status")
}

// CountByCategory conteo agrupado por categoría.
func (r *AnalyticsRepo) CountByCategory(ctx context.Context, scope domain.Scope) (map[string]int64, error) {
	return r.groupCount(ctx, scope, "$category")
}

func (r *AnalyticsRepo) groupCount(ctx context.Context, scope domain.Scope, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scopeFilter(scope)}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", field, err)
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode group %s: %w", field, err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

// SumActiveContractValue suma de contract_value de las ventas active.
func (r *AnalyticsRepo) SumActiveContractValue(ctx context.Context, scope domain.Scope) (float64, error) {
	match := scopeFilter(scope)
	match["status"] = entity.StatusActive
	return r.sum(ctx, match, "$contract_value")
}

// SumCommission suma de commission sobre las ventas con comisión asignada.
func (r *AnalyticsRepo) SumCommission(ctx context.Context, scope domain.Scope) (float64, error) {
	match := scopeFilter(scope)
	match["commission"] = bson.M{"$ne": nil}
	return r.sum(ctx, match, "$commission")
}

// SumActiveValueBetween suma de contract_value de ventas active creadas en [start, end).
func (r *AnalyticsRepo) SumActiveValueBetween(ctx context.Context, scope domain.Scope, start, end time.Time) (float64, error) {
	match := scopeFilter(scope)
	match["status"] = entity.StatusActive
	match["created_at"] = bson.M{"$gte": start, "$lt": end}
	return r.sum(ctx, match, "$contract_value")
}

func (r *AnalyticsRepo) sum(ctx context.Context, match bson.M, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": field}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum %s: %w", field, err)
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode sum %s: %w", field, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// CountCreatedSince ventas con created_at >= since.
func (r *AnalyticsRepo) CountCreatedSince(ctx context.Context, scope domain.Scope, since time.Time) (int64, error) {
	query := scopeFilter(scope)
	query["created_at"] = bson.M{"$gte": since}
	n, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("count sales since: %w", err)
	}
	return n, nil
}

// CountCreatedBetween ventas con created_at en [start, end).
func (r *AnalyticsRepo) CountCreatedBetween(ctx context.Context, scope domain.Scope, start, end time.Time) (int64, error) {
	query := scopeFilter(scope)
	query["created_at"] = bson.M{"$gte": start, "$lt": end}
	n, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("count sales between: %w", err)
	}
	return n, nil
}

// ListLoyaltyExpiring ventas active con fidelización venciendo en o antes de
// `before`, ordenadas por loyalty_end_date ascendente.
func (r *AnalyticsRepo) ListLoyaltyExpiring(ctx context.Context, scope domain.Scope, before time.Time) ([]*entity.Sale, error) {
	query := scopeFilter(scope)
	query["status"] = entity.StatusActive
	query["loyalty_end_date"] = bson.M{"$ne": nil, "$lte": before}

	opts := options.Find().
		SetSort(bson.D{{Key: "loyalty_end_date", Value: 1}}).
		SetLimit(repository.AlertLimit)
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find loyalty alerts: %w", err)
	}
	var sales []*entity.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode loyalty alerts: %w", err)
	}
	return sales, nil
}
