package appmanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServiceSequence(t *testing.T) {
	t.Parallel()

	yaml := `
services:
  - name: gateway
    start_order: 3
    config:
      enabled: true
  - name: logger
    start_order: 1
    config:
      max_file_mb: 20
  - name: report
    start_order: 2
`
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfgs, err := LoadServiceSequence(path)
	require.NoError(t, err)
	require.Len(t, cfgs, 3)

	// Sorted by start_order regardless of file order.
	assert.Equal(t, "logger", cfgs[0].Name)
	assert.Equal(t, "report", cfgs[1].Name)
	assert.Equal(t, "gateway", cfgs[2].Name)
	assert.Equal(t, 20, cfgs[0].Config["max_file_mb"])
}

func TestLoadServiceSequenceMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadServiceSequence(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}

type fakeService struct {
	name    string
	started bool
	stopped bool
}

func (f *fakeService) Name() string { return f.name }
func (f *fakeService) Start() error { f.started = true; return nil }
func (f *fakeService) Stop() error  { f.stopped = true; return nil }

func TestStartStopAll(t *testing.T) {
	t.Parallel()
	am := NewAppManager()
	a := &fakeService{name: "a"}
	b := &fakeService{name: "b"}
	am.RegisterService(a)
	am.RegisterService(b)

	require.NoError(t, am.StartAll())
	assert.True(t, a.started)
	assert.True(t, b.started)

	require.NoError(t, am.StopAll())
	assert.True(t, a.stopped)
	assert.True(t, b.stopped)

	assert.Equal(t, a, am.GetServiceByName("a"))
	assert.Nil(t, am.GetServiceByName("zzz"))
}
