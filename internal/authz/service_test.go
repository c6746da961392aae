package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestBootstrapAndEnforce(t *testing.T) {
	svc, err := NewService(newTestDB(t))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := svc.SetUserRoles(1, []string{"admin"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}
	if err := svc.SetUserRoles(2, []string{"support"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}

	cases := []struct {
		userID uint
		obj    string
		act    string
		want   bool
	}{
		{1, "/admin/orders", "GET", true},
		{1, "/admin/products/5", "DELETE", true},
		{2, "/admin/orders", "GET", true},
		{2, "/admin/orders/5", "GET", true},
		{2, "/admin/orders", "POST", false},
		{2, "/admin/products", "GET", false},
		{3, "/admin/orders", "GET", false},
	}
	for _, tc := range cases {
		got, err := svc.EnforceUser(tc.userID, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce user=%d %s %s: %v", tc.userID, tc.act, tc.obj, err)
		}
		if got != tc.want {
			t.Fatalf("enforce user=%d %s %s = %v, want %v", tc.userID, tc.act, tc.obj, got, tc.want)
		}
	}
}

func TestSetUserRolesReplaces(t *testing.T) {
	svc, err := NewService(newTestDB(t))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := svc.SetUserRoles(7, []string{"admin"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}
	if err := svc.SetUserRoles(7, []string{"support"}); err != nil {
		t.Fatalf("replace roles: %v", err)
	}

	roles, err := svc.GetUserRoles(7)
	if err != nil {
		t.Fatalf("get roles: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:support" {
		t.Fatalf("roles = %v, want [role:support]", roles)
	}

	allowed, err := svc.EnforceUser(7, "/admin/products", "DELETE")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if allowed {
		t.Fatalf("expected admin-only action to be revoked")
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("  Support Staff ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "role:support_staff" {
		t.Fatalf("normalized = %q", got)
	}
	if _, err := NormalizeRole("   "); err == nil {
		t.Fatalf("expected error for blank role")
	}
}
