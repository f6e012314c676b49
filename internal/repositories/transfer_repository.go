package repositories

import "payflow/internal/models"

// TransferRepository stores transfer records. Rows are append-only:
// status mutations go through the Mark/Complete/Fail operations, each a
// single atomic UPDATE guarded against terminal states, so a record
// that reached completed or failed is never touched again.
type TransferRepository interface {
	Create(t *models.Transfer) error
	GetByID(id uint) (*models.Transfer, error)
	ListByParticipant(userID uint) ([]models.Transfer, error)

	// MarkSent flips the sender view to sent while the transfer is
	// still pending overall.
	MarkSent(id uint) error
	// Complete atomically sets (completed, received) on the overall
	// and receiver views.
	Complete(id uint) error
	// Fail atomically sets (failed, failed) on the overall and
	// receiver views. The sender view is left as-is.
	Fail(id uint) error
}
