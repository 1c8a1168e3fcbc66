// FILE: internal/entity/tenant_entity.go
package entity

import (
	"encoding/json"
	"fmt"
	"os"
)

type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TenantCatalog is the explicit catalog object injected at construction,
// replacing the hardcoded module-level tenant table of earlier iterations.
type TenantCatalog struct {
	Tenants []Tenant `json:"tenants"`
}

// LoadTenantCatalog reads the catalog from a JSON file. An empty path falls
// back to the built-in development fixture.
func LoadTenantCatalog(path string) (*TenantCatalog, error) {
	if path == "" {
		return defaultTenantCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tenant catalog: %w", err)
	}

	var catalog TenantCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse tenant catalog: %w", err)
	}
	return &catalog, nil
}

func defaultTenantCatalog() *TenantCatalog {
	return &TenantCatalog{
		Tenants: []Tenant{
			{ID: "aws-tenant-fireflies-4ee3446990", Name: "Fireflies Tenant"},
			{ID: "aws-tenant-dragonfly-5ff4557001", Name: "Dragonfly Tenant"},
		},
	}
}
