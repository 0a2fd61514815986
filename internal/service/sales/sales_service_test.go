package sales

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stock-ahora/api-sales/internal/config"
	"github.com/stock-ahora/api-sales/internal/models"
	"github.com/stock-ahora/api-sales/internal/query"
	"github.com/stock-ahora/api-sales/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubFinder struct {
	spec  query.Spec
	rows  []models.Sale
	total int64
	err   error
}

func (s *stubFinder) List(_ context.Context, spec query.Spec) ([]models.Sale, int64, error) {
	s.spec = spec
	return s.rows, s.total, s.err
}

func TestListTranslatesParams(t *testing.T) {
	finder := &stubFinder{}
	svc := NewSalesService(finder, query.Options{MaxLimit: 50}, zaptest.NewLogger(t))

	params := url.Values{
		"search":     {"  john "},
		"regions":    {"North, South"},
		"limit":      {"500"},
		"page":       {"3"},
		"sort_field": {"quantity"},
		"sort_order": {"asc"},
	}
	page, err := svc.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "john", finder.spec.Search)
	assert.Equal(t, []string{"North", "South"}, finder.spec.Filters.Regions)
	assert.Equal(t, query.Pagination{Page: 3, Limit: 50}, finder.spec.Pagination)
	assert.Equal(t, query.Sort{Field: query.SortByQuantity, Order: query.Asc}, finder.spec.Sort)

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.Total)
}

func TestListMapsRows(t *testing.T) {
	date := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	name := "Jane Roe"
	finder := &stubFinder{
		rows:  []models.Sale{{ID: 7, Date: &date, CustomerName: &name}, {ID: 8}},
		total: 42,
	}
	svc := NewSalesService(finder, query.Options{}, zaptest.NewLogger(t))

	page, err := svc.List(context.Background(), url.Values{})
	require.NoError(t, err)

	assert.Equal(t, int64(42), page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, uint(7), page.Data[0].ID)
	assert.Equal(t, "2023-01-15", *page.Data[0].Date)
	assert.Equal(t, "Jane Roe", *page.Data[0].CustomerName)
	assert.Nil(t, page.Data[1].Date)
}

func TestListPropagatesStorageError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewSalesService(&stubFinder{err: boom}, query.Options{}, zaptest.NewLogger(t))

	_, err := svc.List(context.Background(), url.Values{})
	assert.ErrorIs(t, err, boom)
}

func TestListIsIdempotent(t *testing.T) {
	db, err := config.NewSQLiteDB(":memory:", zaptest.NewLogger(t), "silent")
	require.NoError(t, err)
	repo := repository.NewSaleRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	regions := []string{"North", "South", "East"}
	var rows []models.Sale
	for i := 0; i < 20; i++ {
		region := regions[i%3]
		amount := float64(i % 4)
		rows = append(rows, models.Sale{CustomerRegion: &region, FinalAmount: &amount})
	}
	require.NoError(t, repo.InsertBatch(context.Background(), rows))

	svc := NewSalesService(repo, query.Options{}, zaptest.NewLogger(t))
	params, _ := url.ParseQuery("regions=North,South&sort_field=final_amount&sort_order=asc&limit=4&page=2")

	first, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(14), first.Total)
	assert.Len(t, first.Data, 4)
}
