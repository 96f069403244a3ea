package fsrepo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// InvoiceFSRepository stores rendered invoices as <orderID>.pdf under a directory.
type InvoiceFSRepository struct {
	fs  afero.Fs
	dir string
}

func NewInvoiceFSRepository(fs afero.Fs, dir string) *InvoiceFSRepository {
	return &InvoiceFSRepository{fs: fs, dir: dir}
}

func (r *InvoiceFSRepository) path(orderID string) string {
	return filepath.Join(r.dir, filepath.Base(orderID)+".pdf")
}

// Save overwrites any previous invoice of the order.
func (r *InvoiceFSRepository) Save(_ context.Context, orderID string, pdf []byte) error {
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create invoice dir: %w", err)
	}
	if err := afero.WriteFile(r.fs, r.path(orderID), pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write invoice: %w", err)
	}

	return nil
}

// Load returns an error matching fs.ErrNotExist when no invoice was stored.
func (r *InvoiceFSRepository) Load(_ context.Context, orderID string) ([]byte, error) {
	data, err := afero.ReadFile(r.fs, r.path(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice: %w", err)
	}

	return data, nil
}
