package fsrepo

import (
	"context"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceFSRepository(t *testing.T) {
	mem := afero.NewMemMapFs()
	repo := NewInvoiceFSRepository(mem, "/var/lib/storefront/invoices")
	ctx := context.Background()

	_, err := repo.Load(ctx, "abc")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, repo.Save(ctx, "abc", []byte("%PDF-1")))
	require.NoError(t, repo.Save(ctx, "abc", []byte("%PDF-2")))

	ok, err := afero.Exists(mem, "/var/lib/storefront/invoices/abc.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := repo.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-2"), data)
}

func TestInvoiceFSRepository_KeyStaysInDir(t *testing.T) {
	mem := afero.NewMemMapFs()
	repo := NewInvoiceFSRepository(mem, "/invoices")

	require.NoError(t, repo.Save(context.Background(), "../../etc/passwd", []byte("x")))

	ok, err := afero.Exists(mem, "/invoices/passwd.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}
