package order

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

type fakeOrderRepo struct {
	orders map[int64]*model.Order
	nextID int64
	clock  time.Time
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[int64]*model.Order),
		nextID: 1,
		clock:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order *model.Order) (int64, error) {
	order.ID = f.nextID
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	order.CreatedAt = f.clock
	stored := *order
	f.orders[order.ID] = &stored
	return order.ID, nil
}

func (f *fakeOrderRepo) ListByPatient(ctx context.Context, patientID int64) ([]*model.OrderView, error) {
	var views []*model.OrderView
	for _, o := range f.orders {
		if o.PatientID != patientID {
			continue
		}
		views = append(views, f.toView(o))
	}
	sortViews(views)
	return views, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]*model.OrderView, error) {
	var views []*model.OrderView
	for _, o := range f.orders {
		views = append(views, f.toView(o))
	}
	sortViews(views)
	return views, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (f *fakeOrderRepo) toView(o *model.Order) *model.OrderView {
	custom := ""
	if o.CustomFormulaName != nil {
		custom = *o.CustomFormulaName
	}
	return &model.OrderView{
		ID:          o.ID,
		PatientID:   o.PatientID,
		FormulaName: model.ResolveFormulaName("", custom),
		Quantity:    o.Quantity,
		Unit:        o.Unit,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		Status:      o.Status,
	}
}

func sortViews(views []*model.OrderView) {
	sort.Slice(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})
}

func TestCreateCatalogOrderRejectsNonPositiveQuantity(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)

	_, err := svc.CreateCatalogOrder(context.Background(), 1, 3, 0, "capsules", "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateCatalogOrder(context.Background(), 1, 3, -2, "capsules", "")
	assert.True(t, apperrors.IsValidation(err))

	assert.Empty(t, repo.orders)
}

func TestCreateCatalogOrderDefaults(t *testing.T) {
	svc := NewService(newFakeOrderRepo())

	order, err := svc.CreateCatalogOrder(context.Background(), 1, 3, 5, "capsules", "with lactose-free base")
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.NotNil(t, order.FormulaID)
	assert.Equal(t, int64(3), *order.FormulaID)
	assert.Nil(t, order.CustomFormulaName, "catalog order must not carry a custom name")
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateCustomOrderValidation(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)

	_, err := svc.CreateCustomOrder(context.Background(), 1, "   ", 2, "jars", "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateCustomOrder(context.Background(), 1, "Calendula Balm", 0, "jars", "")
	assert.True(t, apperrors.IsValidation(err))

	assert.Empty(t, repo.orders)
}

func TestCreateCustomOrderSetsExactlyOneFormulaField(t *testing.T) {
	svc := NewService(newFakeOrderRepo())

	order, err := svc.CreateCustomOrder(context.Background(), 1, "  Calendula Balm ", 2, "jars", "")
	require.NoError(t, err)

	assert.Nil(t, order.FormulaID)
	require.NotNil(t, order.CustomFormulaName)
	assert.Equal(t, "Calendula Balm", *order.CustomFormulaName)
	assert.Equal(t, model.OrderStatusPending, order.Status)
}

func TestListByPatientNewestFirst(t *testing.T) {
	svc := NewService(newFakeOrderRepo())
	ctx := context.Background()

	_, err := svc.CreateCustomOrder(ctx, 1, "First", 1, "", "")
	require.NoError(t, err)
	_, err = svc.CreateCustomOrder(ctx, 1, "Second", 1, "", "")
	require.NoError(t, err)
	_, err = svc.CreateCustomOrder(ctx, 2, "Other patient", 1, "", "")
	require.NoError(t, err)

	views, err := svc.ListByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Second", views[0].FormulaName)
	assert.Equal(t, "First", views[1].FormulaName)
}

func TestSetStatusValidation(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	ctx := context.Background()

	order, err := svc.CreateCustomOrder(ctx, 1, "Balm", 1, "", "")
	require.NoError(t, err)

	assert.True(t, apperrors.IsValidation(svc.SetStatus(ctx, order.ID, "")))
	assert.True(t, apperrors.IsValidation(svc.SetStatus(ctx, order.ID, "Shipped")))
	assert.Equal(t, model.OrderStatusPending, repo.orders[order.ID].Status)

	require.NoError(t, svc.SetStatus(ctx, order.ID, "InPreparation"))
	assert.Equal(t, model.OrderStatusInPreparation, repo.orders[order.ID].Status)

	// Any recognized state may be set; adjacency is not enforced.
	require.NoError(t, svc.SetStatus(ctx, order.ID, "Delivered"))
	require.NoError(t, svc.SetStatus(ctx, order.ID, "Cancelled"))
}

func TestSetStatusUnknownOrderIsNotFound(t *testing.T) {
	svc := NewService(newFakeOrderRepo())

	err := svc.SetStatus(context.Background(), 404, "Ready")
	assert.True(t, apperrors.IsNotFound(err))
}
