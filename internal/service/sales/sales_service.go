package sales

import (
	"context"
	"net/url"
	"time"

	"github.com/stock-ahora/api-sales/internal/dto"
	"github.com/stock-ahora/api-sales/internal/models"
	"github.com/stock-ahora/api-sales/internal/query"
	"go.uber.org/zap"
)

// SaleFinder is the read side of the sales repository.
type SaleFinder interface {
	List(ctx context.Context, spec query.Spec) ([]models.Sale, int64, error)
}

type SalesService interface {
	// List translates raw query parameters, runs the query and maps the page.
	List(ctx context.Context, params url.Values) (dto.Page[dto.SaleDto], error)
}

type salesService struct {
	repo SaleFinder
	opts query.Options
	log  *zap.Logger
}

func NewSalesService(repo SaleFinder, opts query.Options, log *zap.Logger) SalesService {
	return &salesService{repo: repo, opts: opts, log: log.Named("sales")}
}

func (s salesService) List(ctx context.Context, params url.Values) (dto.Page[dto.SaleDto], error) {
	spec := query.Parse(params, s.opts)

	start := time.Now()
	rows, total, err := s.repo.List(ctx, spec)
	took := time.Since(start)
	listLatency.Observe(took.Seconds())
	if err != nil {
		listErrors.Inc()
		return dto.Page[dto.SaleDto]{}, err
	}

	s.log.Debug("listed sales",
		zap.String("search", spec.Search),
		zap.String("sort", string(spec.Sort.Field)+" "+string(spec.Sort.Order)),
		zap.Int("page", spec.Pagination.Page),
		zap.Int("limit", spec.Pagination.Limit),
		zap.Int64("total", total),
		zap.Int("pages", dto.TotalPages(total, spec.Pagination.Limit)),
		zap.Duration("took", took),
	)

	return dto.Page[dto.SaleDto]{
		Data:  dto.NewSaleDtos(rows),
		Total: total,
	}, nil
}
