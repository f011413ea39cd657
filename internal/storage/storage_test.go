package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hr-portal/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	s, err := storage.NewLocalStorage(root, 16)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("save and delete", func(t *testing.T) {
		f, err := s.Save(ctx, "employees/emp-1", "Contract.PDF", strings.NewReader("signed"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(f.Path, "employees/emp-1/"))
		assert.True(t, strings.HasSuffix(f.Path, ".pdf"))
		assert.Equal(t, int64(6), f.Size)

		full, err := s.Resolve(ctx, f.Path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, f.Path), full)
		data, err := os.ReadFile(full)
		require.NoError(t, err)
		assert.Equal(t, "signed", string(data))

		require.NoError(t, s.Delete(ctx, f.Path))
		_, err = s.Resolve(ctx, f.Path)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = os.Stat(filepath.Join(root, f.Path))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, s.Delete(ctx, f.Path))
	})

	t.Run("negative too large", func(t *testing.T) {
		_, err := s.Save(ctx, "employees/emp-1", "big.txt", strings.NewReader(strings.Repeat("x", 17)))
		assert.ErrorIs(t, err, storage.ErrTooLarge)
	})

	t.Run("negative active content rejected", func(t *testing.T) {
		for _, name := range []string{"page.html", "icon.svg", "noext"} {
			_, err := s.Save(ctx, "employees/emp-1", name, strings.NewReader("<script>"))
			assert.ErrorIs(t, err, storage.ErrUnsupportedType, name)
		}
	})

	t.Run("resolve cannot escape root", func(t *testing.T) {
		_, err := s.Resolve(ctx, "../../etc/passwd")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.Resolve(ctx, "employees")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("folder cannot escape root", func(t *testing.T) {
		f, err := s.Save(ctx, "../../etc", "x.txt", strings.NewReader("x"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(f.Path, "etc/"))
		_, err = os.Stat(filepath.Join(root, f.Path))
		assert.NoError(t, err)
	})
}
