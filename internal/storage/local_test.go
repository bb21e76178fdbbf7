package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("save assigns a unique name and keeps the extension", func(t *testing.T) {
		a, err := s.Save("rx.PNG", strings.NewReader("one"))
		require.NoError(t, err)
		b, err := s.Save("rx.PNG", strings.NewReader("two"))
		require.NoError(t, err)

		assert.NotEqual(t, a.FileName, b.FileName)
		assert.True(t, strings.HasSuffix(a.FileName, ".png"))
		assert.Equal(t, int64(3), a.Size)
	})

	t.Run("open reads back what was saved", func(t *testing.T) {
		saved, err := s.Save("report.pdf", strings.NewReader("content"))
		require.NoError(t, err)

		f, err := s.Open(saved.FileName)
		require.NoError(t, err)
		defer f.Close()

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		saved, err := s.Save("x.txt", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(saved.FileName))
		assert.NoError(t, s.Delete(saved.FileName))
	})

	t.Run("open refuses path traversal", func(t *testing.T) {
		_, err := s.Open("../../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("public path is under /uploads", func(t *testing.T) {
		assert.Equal(t, "/uploads/abc.png", s.PublicPath("abc.png"))
	})
}
