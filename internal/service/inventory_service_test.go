package service

import (
	"testing"

	"go-resell-sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture(products ...*model.Product) (InventoryService, *fakeProductRepo, *fakeAdjustmentRepo) {
	pRepo := newFakeProductRepo(products...)
	aRepo := newFakeAdjustmentRepo()
	return NewInventoryService(pRepo, aRepo, nil), pRepo, aRepo
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc, _, _ := newInventoryFixture(&model.Product{Name: "Existing", SKU: "DUP-1"})

	err := svc.CreateProduct(&model.Product{Name: "New", SKU: "DUP-1"}, "admin@shop.test")
	assert.ErrorIs(t, err, ErrSKUExists)
}

func TestCreateProductRequiresName(t *testing.T) {
	svc, _, _ := newInventoryFixture()

	err := svc.CreateProduct(&model.Product{SKU: "NO-NAME"}, "admin@shop.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCreateProductSetsAuditFields(t *testing.T) {
	svc, pRepo, _ := newInventoryFixture()

	p := &model.Product{Name: "Fresh", SKU: "F-1", Stock: 2}
	require.NoError(t, svc.CreateProduct(p, "admin@shop.test"))

	got, err := pRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@shop.test", got.CreatedBy)
}

func TestManualAdjustmentWritesAuditRow(t *testing.T) {
	store := &model.Product{Name: "Counted", Stock: 5}
	svc, _, aRepo := newInventoryFixture(store)

	got, err := svc.RecordManualAdjustment(store.ID, 12, "stock take", "admin@shop.test")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	adjs := aRepo.all()
	require.Len(t, adjs, 1)
	assert.Equal(t, 7, adjs[0].Delta)
	assert.Equal(t, model.ReasonManualCount, adjs[0].Reason)
	assert.Equal(t, model.SourceManual, adjs[0].Source)
	assert.Equal(t, "stock take", adjs[0].Note)
}

func TestManualAdjustmentSameCountWritesNothing(t *testing.T) {
	store := &model.Product{Name: "Unchanged", Stock: 5}
	svc, _, aRepo := newInventoryFixture(store)

	_, err := svc.RecordManualAdjustment(store.ID, 5, "", "admin@shop.test")
	require.NoError(t, err)
	assert.Empty(t, aRepo.all())
}

func TestManualAdjustmentRejectsNegativeCount(t *testing.T) {
	store := &model.Product{Name: "X", Stock: 5}
	svc, _, _ := newInventoryFixture(store)

	_, err := svc.RecordManualAdjustment(store.ID, -1, "", "admin@shop.test")
	assert.Error(t, err)
}
