package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvNumThreads, "4,2")
	t.Setenv(EnvNested, "true")
	t.Setenv(EnvThreadLimit, "8")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, cfg.NumThreads)
	assert.True(t, cfg.Nested)
	assert.Equal(t, 8, cfg.ThreadLimit)
}

func TestFromEnvOMPFallback(t *testing.T) {
	t.Setenv(EnvNumThreads, "")
	t.Setenv(EnvNumThreadsOMP, "3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, cfg.NumThreads)
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv(EnvNumThreads, "4,x")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv(EnvNumThreads, "4")
	t.Setenv(EnvThreadLimit, "-1")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := New()
	assert.NoError(t, cfg.Validate())

	cfg.NumThreads = nil
	assert.Error(t, cfg.Validate())

	cfg.NumThreads = []int{2, 0}
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.ThreadLimit = -2
	assert.Error(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parallel.yaml")
	content := "numThreads: [2, 3]\nnested: true\nthreadLimit: 6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, cfg.NumThreads)
	assert.True(t, cfg.Nested)
	assert.Equal(t, 6, cfg.ThreadLimit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultOverrides(t *testing.T) {
	original := Default()
	defer func() { _ = SetDefault(original) }()

	require.NoError(t, SetNumThreads(2, 4))
	SetNested(true)
	require.NoError(t, SetThreadLimit(3))

	cfg := Default()
	assert.Equal(t, []int{2, 4}, cfg.NumThreads)
	assert.True(t, cfg.Nested)
	assert.Equal(t, 3, cfg.ThreadLimit)

	// Default returns copies: mutating one must not leak into the next.
	cfg.NumThreads[0] = 99
	assert.Equal(t, 2, Default().NumThreads[0])

	assert.Error(t, SetNumThreads(0))
}
