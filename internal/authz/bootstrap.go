package authz

import "fmt"

// RoleSeed is a builtin role definition.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds is the builtin role matrix. Readonly staff can see
// everything; producers manage their bookings and submit payment
// proofs; finance additionally settles payments and manages the
// roster and accounts.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly",
			Policies: []Policy{
				{Object: "/payments", Action: "GET"},
				{Object: "/payments/:id", Action: "GET"},
				{Object: "/events", Action: "GET"},
				{Object: "/events/:id", Action: "GET"},
				{Object: "/djs", Action: "GET"},
				{Object: "/djs/:id", Action: "GET"},
				{Object: "/contracts", Action: "GET"},
				{Object: "/contracts/:id", Action: "GET"},
				{Object: "/dashboard/stats", Action: "GET"},
			},
		},
		{
			Role:     "producer",
			Inherits: []string{"readonly"},
			Policies: []Policy{
				{Object: "/events", Action: "POST"},
				{Object: "/events/:id", Action: "PUT"},
				{Object: "/payments", Action: "POST"},
				{Object: "/payments/:id/proof", Action: "POST"},
				{Object: "/payments/:id/proof", Action: "DELETE"},
				{Object: "/payments/:id/verify", Action: "POST"},
				{Object: "/contracts", Action: "POST"},
				{Object: "/contracts/:id", Action: "PUT"},
			},
		},
		{
			Role:     "finance",
			Inherits: []string{"producer"},
			Policies: []Policy{
				{Object: "/payments/:id/mark-paid", Action: "POST"},
				{Object: "/events/:id", Action: "DELETE"},
				{Object: "/djs", Action: "POST"},
				{Object: "/djs/:id", Action: "PUT"},
				{Object: "/djs/:id", Action: "DELETE"},
				{Object: "/contracts/:id", Action: "DELETE"},
				{Object: "/accounts", Action: "*"},
				{Object: "/accounts/:id", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the builtin roles and their policies.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
