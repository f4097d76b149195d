// Package variants turns grouping keys back into human labels
// A group's label lists its distinct spellings, busiest first, joined
// with " / " ("Sophie / Sofie")
package variants

import (
	"context"
	"strings"

	"prenoms/internal/core/names"
	"prenoms/internal/platform/logger"
	"prenoms/internal/services/records/domain"
	"prenoms/internal/services/records/repo"
)

// Resolver labels groups by looking their spellings up in the dataset
type Resolver struct {
	Repo repo.Repo
}

// New constructs a resolver
func New(r repo.Repo) *Resolver {
	if r == nil {
		panic("variants.Resolver requires a non nil Repo")
	}
	return &Resolver{Repo: r}
}

// Label resolves the display label for one group
func (v *Resolver) Label(ctx context.Context, p names.Policy, key string, sex domain.Sex) (string, error) {
	if p == names.PolicyExact {
		// exact groups fold case only, so every spelling formats identically
		return names.FormatDisplay(key), nil
	}
	vars, err := v.Repo.VariantsByKey(ctx, p, key, sex)
	if err != nil {
		return "", err
	}
	return v.join(ctx, key, vars), nil
}

// LabelMany resolves labels for a page of groups with a single query
func (v *Resolver) LabelMany(
	ctx context.Context,
	p names.Policy,
	keys []string,
	sex domain.Sex,
) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if p == names.PolicyExact {
		for _, k := range keys {
			out[k] = names.FormatDisplay(k)
		}
		return out, nil
	}
	byKey, err := v.Repo.VariantsByKeys(ctx, p, keys, sex)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		out[k] = v.join(ctx, k, byKey[k])
	}
	return out, nil
}

// join formats and deduplicates spellings; repo order (total desc, then
// spelling asc) is preserved
func (v *Resolver) join(ctx context.Context, key string, vars []domain.VariantCount) string {
	if len(vars) == 0 {
		// a key with no rows means the caller asked about something the
		// dataset never saw; fall back to the key itself
		logger.C(ctx).Warn().Str("key", key).Msg("variants: no spellings found for group key")
		return names.FormatDisplay(key)
	}

	seen := make(map[string]struct{}, len(vars))
	labels := make([]string, 0, len(vars))
	for _, vc := range vars {
		d := names.FormatDisplay(vc.Name)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		labels = append(labels, d)
	}
	return strings.Join(labels, " / ")
}
