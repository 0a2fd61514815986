package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/stock-ahora/api-sales/internal/models"
	"github.com/stock-ahora/api-sales/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertChunkSize keeps a single INSERT under the Postgres bind-parameter
// limit (65535) for the sales column count.
const insertChunkSize = 1000

type SaleRepository interface {
	// List returns one page of rows matching spec and the count of all matches.
	List(ctx context.Context, spec query.Spec) ([]models.Sale, int64, error)
	Count(ctx context.Context) (int64, error)
	// InsertBatch inserts all rows in one transaction.
	InsertBatch(ctx context.Context, sales []models.Sale) error
	EnsureSchema(ctx context.Context) error
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r saleRepository) List(ctx context.Context, spec query.Spec) ([]models.Sale, int64, error) {
	filtered := applyFilters(r.db.WithContext(ctx).Model(&models.Sale{}), spec)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	sales := []models.Sale{}
	if total == 0 || int64(spec.Pagination.Offset()) >= total {
		return sales, total, nil
	}

	err := applyOrder(filtered.Session(&gorm.Session{}), spec.Sort).
		Limit(spec.Pagination.Limit).
		Offset(spec.Pagination.Offset()).
		Find(&sales).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query sales: %w", err)
	}

	return sales, total, nil
}

func (r saleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Sale{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

func (r saleRepository) InsertBatch(ctx context.Context, sales []models.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&sales, insertChunkSize).Error; err != nil {
			return fmt.Errorf("insert %d sales: %w", len(sales), err)
		}
		return nil
	})
}

func (r saleRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Sale{}); err != nil {
		return fmt.Errorf("ensure sales table: %w", err)
	}
	return nil
}

var searchColumns = []string{"customer_name", "phone_number", "product_name"}

// searchCondition matches the three search columns case-insensitively.
// Postgres folds Unicode with ILIKE; other dialects fall back to LOWER, which
// SQLite only applies to ASCII letters.
func searchCondition(dialect string) string {
	terms := make([]string, len(searchColumns))
	for i, col := range searchColumns {
		if dialect == "postgres" {
			terms[i] = col + ` ILIKE ? ESCAPE '\'`
		} else {
			terms[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
		}
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// applyFilters adds the search OR-group, the set-membership filters and the
// date range, all joined with AND.
func applyFilters(db *gorm.DB, spec query.Spec) *gorm.DB {
	if spec.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(spec.Search)) + "%"
		db = db.Where(searchCondition(db.Dialector.Name()), pattern, pattern, pattern)
	}

	db = whereIn(db, "customer_region", spec.Filters.Regions)
	db = whereIn(db, "gender", spec.Filters.Genders)
	db = whereIn(db, "product_category", spec.Filters.Categories)
	db = whereIn(db, "tags", spec.Filters.Tags)
	db = whereIn(db, "payment_method", spec.Filters.PaymentMethods)

	if spec.DateRange.Start != nil {
		db = db.Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: *spec.DateRange.Start})
	}
	if spec.DateRange.End != nil {
		db = db.Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: *spec.DateRange.End})
	}

	return db
}

func whereIn(db *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return db
	}
	return db.Where(clause.IN{Column: clause.Column{Name: column}, Values: toAny(values)})
}

// applyOrder sorts by the requested column and breaks ties by id so pages
// never overlap.
func applyOrder(db *gorm.DB, sort query.Sort) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Field.Column()}, Desc: sort.Order != query.Asc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
