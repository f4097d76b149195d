package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (SearchPage, error)
	ByName(ctx context.Context, in ByNameInput) (NameRecords, error)
	Compare(ctx context.Context, in CompareInput) (ComparePage, error)
}
