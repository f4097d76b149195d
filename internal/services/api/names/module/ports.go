package module

import (
	"context"

	"prenoms/internal/services/api/names/domain"
	namesvc "prenoms/internal/services/api/names/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptNamesPort struct{ svc namesvc.Service }

// Search matches name groups by key prefix
func (a adaptNamesPort) Search(ctx context.Context, in domain.SearchInput) (domain.SearchPage, error) {
	return a.svc.Search(ctx, in)
}

// ByName returns the records of one name's group
func (a adaptNamesPort) ByName(ctx context.Context, in domain.ByNameInput) (domain.NameRecords, error) {
	return a.svc.ByName(ctx, in)
}

// Compare returns the union of records for several names
func (a adaptNamesPort) Compare(ctx context.Context, in domain.CompareInput) (domain.ComparePage, error) {
	return a.svc.Compare(ctx, in)
}
