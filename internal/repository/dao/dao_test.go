package dao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovenledger/bakehouse-api/internal/db"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool -> %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		fmt.Println("docker is not available, skipping integration tests")
		os.Exit(0)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=bakehouse_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s/bakehouse_test?sslmode=disable",
		resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 120 * time.Second
	if err = pool.Retry(func() error {
		testDB, err = db.OpenPostgresWithURL(dsn)
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("pool.Retry -> %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("InitTables -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func createTestAdmin(t *testing.T, email string) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:    email,
		Password: "hashed",
		Name:     "Test Admin",
		Role:     "admin",
		Branch:   "Main Branch",
	})
	require.NoError(t, err)

	return user
}

func createTestProduct(t *testing.T, adminID uint, name, branch string, quantity int) Product {
	t.Helper()

	product, err := NewProductDAO(testDB).Insert(context.Background(), Product{
		AdminID:  adminID,
		Branch:   branch,
		Name:     name,
		Quantity: quantity,
		Price:    3.50,
		AddedBy:  adminID,
	})
	require.NoError(t, err)

	return product
}

func TestUserDAO_Insert_DuplicateEmail(t *testing.T) {
	createTestAdmin(t, "dup@bakehouse.test")

	_, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:    "dup@bakehouse.test",
		Password: "hashed",
		Name:     "Second",
		Role:     "admin",
		Branch:   "Main Branch",
	})

	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestProductDAO_FindByID_TenantMismatch(t *testing.T) {
	owner := createTestAdmin(t, "owner-mismatch@bakehouse.test")
	other := createTestAdmin(t, "other-mismatch@bakehouse.test")
	product := createTestProduct(t, owner.ID, "Rye Loaf", "Main Branch", 5)

	_, err := NewProductDAO(testDB).FindByID(context.Background(), other.ID, product.ID)

	assert.ErrorIs(t, err, ErrTenantMismatch)
}

func TestProductDAO_AdjustQuantity_NeverNegative(t *testing.T) {
	admin := createTestAdmin(t, "concurrent@bakehouse.test")
	product := createTestProduct(t, admin.ID, "Croissant", "Main Branch", 5)

	d := NewProductDAO(testDB)

	// Ten concurrent single-unit decrements against five units of stock:
	// exactly five must win.
	const workers = 10
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- d.AdjustQuantity(context.Background(), admin.ID, product.ID, -1)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, rejected)

	final, err := d.FindByID(context.Background(), admin.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Quantity)
}

func TestSaleDAO_Insert_PerTenantBillNumbers(t *testing.T) {
	shopOne := createTestAdmin(t, "shop-one@bakehouse.test")
	shopTwo := createTestAdmin(t, "shop-two@bakehouse.test")
	productOne := createTestProduct(t, shopOne.ID, "Baguette", "Main Branch", 100)
	productTwo := createTestProduct(t, shopTwo.ID, "Baguette", "Main Branch", 100)

	d := NewSaleDAO(testDB)

	newSale := func(adminID, productID uint) Sale {
		return Sale{
			AdminID:     adminID,
			BillNumber:  "BILL-0001",
			Branch:      "Main Branch",
			TotalAmount: 3.50,
			SoldBy:      adminID,
			Items: []SaleItem{
				{ProductID: productID, Quantity: 1, UnitPrice: 3.50, Subtotal: 3.50},
			},
		}
	}

	_, err := d.Insert(context.Background(), newSale(shopOne.ID, productOne.ID))
	require.NoError(t, err)

	// A different shop may reuse the number.
	_, err = d.Insert(context.Background(), newSale(shopTwo.ID, productTwo.ID))
	require.NoError(t, err)

	// The same shop may not.
	_, err = d.Insert(context.Background(), newSale(shopOne.ID, productOne.ID))
	assert.ErrorIs(t, err, ErrBillNumberExists)
}

func TestSaleDAO_Insert_RollsBackOnShortage(t *testing.T) {
	admin := createTestAdmin(t, "shortage@bakehouse.test")
	plenty := createTestProduct(t, admin.ID, "Sourdough", "Main Branch", 100)
	scarce := createTestProduct(t, admin.ID, "Eclair", "Main Branch", 1)

	d := NewSaleDAO(testDB)

	_, err := d.Insert(context.Background(), Sale{
		AdminID:     admin.ID,
		BillNumber:  "BILL-SHORT",
		Branch:      "Main Branch",
		TotalAmount: 20,
		SoldBy:      admin.ID,
		Items: []SaleItem{
			{ProductID: plenty.ID, Quantity: 2, UnitPrice: 4, Subtotal: 8},
			{ProductID: scarce.ID, Quantity: 3, UnitPrice: 4, Subtotal: 12},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The first item's decrement must have been rolled back with the sale.
	productDAO := NewProductDAO(testDB)
	reloaded, err := productDAO.FindByID(context.Background(), admin.ID, plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, reloaded.Quantity)

	var count int64
	require.NoError(t, testDB.Model(&Sale{}).
		Where("admin_id = ? AND bill_number = ?", admin.ID, "BILL-SHORT").
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransferDAO_Complete(t *testing.T) {
	admin := createTestAdmin(t, "transfer@bakehouse.test")
	source := createTestProduct(t, admin.ID, "Ciabatta", "Main Branch", 10)

	transferDAO := NewTransferDAO(testDB)
	productDAO := NewProductDAO(testDB)

	transfer, err := transferDAO.Insert(context.Background(), StockTransfer{
		AdminID:    admin.ID,
		ProductID:  source.ID,
		Quantity:   4,
		FromBranch: "Main Branch",
		ToBranch:   "Downtown",
		Status:     "Pending",
	})
	require.NoError(t, err)

	completed, err := transferDAO.Complete(context.Background(), admin.ID, transfer.ID, &admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", completed.Status)
	require.NotNil(t, completed.CompletedDate)

	reloaded, err := productDAO.FindByID(context.Background(), admin.ID, source.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.Quantity)

	dest, err := productDAO.FindByNameAndBranch(context.Background(), admin.ID, "Ciabatta", "Downtown")
	require.NoError(t, err)
	assert.Equal(t, 4, dest.Quantity)

	// Completing again fails; the transfer is terminal.
	_, err = transferDAO.Complete(context.Background(), admin.ID, transfer.ID, &admin.ID)
	assert.ErrorIs(t, err, ErrTransferIsTerminal)
}

func TestTransferDAO_Complete_ShortageRollsBack(t *testing.T) {
	admin := createTestAdmin(t, "transfer-short@bakehouse.test")
	source := createTestProduct(t, admin.ID, "Focaccia", "Main Branch", 2)

	transferDAO := NewTransferDAO(testDB)
	productDAO := NewProductDAO(testDB)

	transfer, err := transferDAO.Insert(context.Background(), StockTransfer{
		AdminID:    admin.ID,
		ProductID:  source.ID,
		Quantity:   50,
		FromBranch: "Main Branch",
		ToBranch:   "Downtown",
		Status:     "Pending",
	})
	require.NoError(t, err)

	_, err = transferDAO.Complete(context.Background(), admin.ID, transfer.ID, nil)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing moved, and the failed claim was rolled back with it.
	reloaded, err := productDAO.FindByID(context.Background(), admin.ID, source.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Quantity)

	unchanged, err := transferDAO.FindByID(context.Background(), admin.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", unchanged.Status)

	_, err = productDAO.FindByNameAndBranch(context.Background(), admin.ID, "Focaccia", "Downtown")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestTransferDAO_CancelLeavesStockUntouched(t *testing.T) {
	admin := createTestAdmin(t, "transfer-cancel@bakehouse.test")
	source := createTestProduct(t, admin.ID, "Pretzel", "Main Branch", 8)

	transferDAO := NewTransferDAO(testDB)
	productDAO := NewProductDAO(testDB)

	transfer, err := transferDAO.Insert(context.Background(), StockTransfer{
		AdminID:    admin.ID,
		ProductID:  source.ID,
		Quantity:   3,
		FromBranch: "Main Branch",
		ToBranch:   "Downtown",
		Status:     "Pending",
	})
	require.NoError(t, err)

	cancelled, err := transferDAO.UpdateStatus(context.Background(), admin.ID, transfer.ID,
		[]string{"Pending", "In Transit"}, "Cancelled", nil)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)

	reloaded, err := productDAO.FindByID(context.Background(), admin.ID, source.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, reloaded.Quantity)

	// A cancelled transfer cannot be dispatched.
	_, err = transferDAO.UpdateStatus(context.Background(), admin.ID, transfer.ID,
		[]string{"Pending"}, "In Transit", nil)
	assert.ErrorIs(t, err, ErrTransferIsTerminal)
}

func TestProductDAO_BatchWritesResyncQuantity(t *testing.T) {
	admin := createTestAdmin(t, "batches@bakehouse.test")
	product := createTestProduct(t, admin.ID, "Muffin", "Main Branch", 0)

	d := NewProductDAO(testDB)

	first, err := d.InsertBatch(context.Background(), Batch{
		AdminID:         admin.ID,
		ProductID:       product.ID,
		BatchCode:       "LOT-1",
		Quantity:        20,
		ManufactureDate: time.Now().AddDate(0, 0, -1),
		ExpiryDate:      time.Now().AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	_, err = d.InsertBatch(context.Background(), Batch{
		AdminID:         admin.ID,
		ProductID:       product.ID,
		BatchCode:       "LOT-2",
		Quantity:        10,
		ManufactureDate: time.Now(),
		ExpiryDate:      time.Now().AddDate(0, 0, 12),
	})
	require.NoError(t, err)

	reloaded, err := d.FindByID(context.Background(), admin.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, reloaded.Quantity)

	require.NoError(t, d.DeleteBatch(context.Background(), admin.ID, first.ID))

	reloaded, err = d.FindByID(context.Background(), admin.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Quantity)
}
