package pipeline

import (
	"context"
	"errors"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
)

// MultiLoader hands each reading to every configured loader. All loaders are
// attempted; their failures are joined.
type MultiLoader []Loader

func (m MultiLoader) Load(ctx context.Context, result domain.PresentationResult) error {
	var errs []error
	for _, l := range m {
		if err := l.Load(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
