package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAccountWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("producer", "/payments/:id/proof", "POST"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAccountRoles(1, []string{"producer"}); err != nil {
		t.Fatalf("set account roles failed: %v", err)
	}

	allow, err := svc.EnforceAccount(1, "/api/v1/payments/42/proof", "post")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAccount(1, "/api/v1/payments/42/mark-paid", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAccountRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("producer", "/events", "POST"); err != nil {
		t.Fatalf("grant producer policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("finance", "/payments/:id/mark-paid", "POST"); err != nil {
		t.Fatalf("grant finance policy failed: %v", err)
	}

	if err := svc.SetAccountRoles(2, []string{"producer"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAccountRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:producer" {
		t.Fatalf("roles want [role:producer], got=%v", roles)
	}

	if err := svc.SetAccountRoles(2, []string{"finance"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetAccountRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:finance" {
		t.Fatalf("roles want [role:finance], got=%v", roles)
	}

	allow, err := svc.EnforceAccount(2, "/events", "POST")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceAccount(2, "/payments/7/mark-paid", "POST")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/payments/:id", want: "/payments/:id"},
		{in: "/payments/:id", want: "/payments/:id"},
		{in: "payments", want: "/payments"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if err := svc.SetAccountRoles(3, []string{"producer"}); err != nil {
		t.Fatalf("set account roles failed: %v", err)
	}

	allow, err := svc.EnforceAccount(3, "/payments/9/proof", "POST")
	if err != nil {
		t.Fatalf("enforce producer write failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected producer proof submission allowed")
	}

	allow, err = svc.EnforceAccount(3, "/dashboard/stats", "GET")
	if err != nil {
		t.Fatalf("enforce inherited readonly failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited readonly permission")
	}

	allow, err = svc.EnforceAccount(3, "/payments/9/mark-paid", "POST")
	if err != nil {
		t.Fatalf("enforce settlement failed: %v", err)
	}
	if allow {
		t.Fatalf("expected manual settlement reserved to finance")
	}

	if err := svc.SetAccountRoles(4, []string{"finance"}); err != nil {
		t.Fatalf("set finance roles failed: %v", err)
	}
	allow, err = svc.EnforceAccount(4, "/payments/9/mark-paid", "POST")
	if err != nil {
		t.Fatalf("enforce finance settlement failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected finance settlement allowed")
	}
	allow, err = svc.EnforceAccount(4, "/accounts/5", "PUT")
	if err != nil {
		t.Fatalf("enforce wildcard action failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected wildcard account management allowed")
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("  booking ops ")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if got != "role:booking_ops" {
		t.Fatalf("role want role:booking_ops got %s", got)
	}
	if _, err := NormalizeRole("   "); err == nil {
		t.Fatalf("expected empty role rejected")
	}
	if _, err := NormalizeRole("role:"); err == nil {
		t.Fatalf("expected bare prefix rejected")
	}
}
