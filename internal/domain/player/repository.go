package player

import (
	"context"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
)

// Repository supplies the full roster of a variant in source order.
type Repository interface {
	ListByVariant(ctx context.Context, v variant.Variant) ([]Record, error)
}
