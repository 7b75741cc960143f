package postgres

import (
	"context"

	"github.com/momeni/catways/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of generic query functions which
// may run on a connection or a transaction alike.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}
