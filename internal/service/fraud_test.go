package service

import (
	"testing"

	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"

	"gorm.io/gorm"
)

func insertFraudFixture(t *testing.T, db *gorm.DB, orderNo, ip, phone, governorate string) {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		FullName:    "Test Buyer",
		PhoneNumber: phone,
		Governorate: governorate,
		Address:     "1 Test St",
		ClientIP:    ip,
		Status:      "home",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
}

func newTestFraudChecker(t *testing.T, db *gorm.DB) *FraudChecker {
	t.Helper()
	return NewFraudChecker(repository.NewOrderRepository(db), FraudThresholds{
		MaxPhonesPerIP:       2,
		MaxGovernoratesPerIP: 1,
	})
}

func TestFraudEmptyIPNeverFlags(t *testing.T) {
	db := newTestDB(t)
	checker := newTestFraudChecker(t, db)

	suspicious, err := checker.IsSuspicious("", "07701234567", "Baghdad")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if suspicious {
		t.Fatalf("empty ip must not flag")
	}
}

func TestFraudPhoneDiversity(t *testing.T) {
	db := newTestDB(t)
	checker := newTestFraudChecker(t, db)
	ip := "203.0.113.5"
	insertFraudFixture(t, db, "TJ-F1", ip, "07701111111", "Baghdad")

	// Second distinct phone stays within the threshold.
	suspicious, err := checker.IsSuspicious(ip, "07702222222", "Baghdad")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if suspicious {
		t.Fatalf("two distinct phones must not flag")
	}

	insertFraudFixture(t, db, "TJ-F2", ip, "07702222222", "Baghdad")

	// Third distinct phone crosses it.
	suspicious, err = checker.IsSuspicious(ip, "07703333333", "Baghdad")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !suspicious {
		t.Fatalf("three distinct phones must flag")
	}
}

func TestFraudGovernorateDiversity(t *testing.T) {
	db := newTestDB(t)
	checker := newTestFraudChecker(t, db)
	ip := "203.0.113.6"
	insertFraudFixture(t, db, "TJ-F3", ip, "07701111111", "Baghdad")

	suspicious, err := checker.IsSuspicious(ip, "07701111111", "Basra")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !suspicious {
		t.Fatalf("second distinct governorate must flag")
	}
}

func TestFraudRepeatIdentityStaysClean(t *testing.T) {
	db := newTestDB(t)
	checker := newTestFraudChecker(t, db)
	ip := "203.0.113.7"
	insertFraudFixture(t, db, "TJ-F4", ip, "07701111111", "Baghdad")
	insertFraudFixture(t, db, "TJ-F5", ip, "07701111111", "Baghdad")

	suspicious, err := checker.IsSuspicious(ip, "07701111111", "Baghdad")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if suspicious {
		t.Fatalf("repeat identity from one ip must not flag")
	}
}
