package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapil1024/Redfish-Service-Validator/internal/config"
	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
	"github.com/kapil1024/Redfish-Service-Validator/internal/validator"
)

// syncBuffer guards a bytes.Buffer written from watcher callbacks.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestManager(t *testing.T, metaDir string) (*CLIManager, *syncBuffer) {
	t.Helper()

	catalog, err := schema.Load(metaDir)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := NewCLIManager(logger, catalog, config.Default())

	buf := &syncBuffer{}
	mgr.reporterWriter = buf
	return mgr, buf
}

func TestCLIManager_ValidatePayload(t *testing.T) {
	t.Parallel()

	metaDir, payloadDir := writeTestWorkspace(t)

	t.Run("single payload passes", func(t *testing.T) {
		t.Parallel()
		mgr, buf := newTestManager(t, metaDir)

		err := mgr.ValidatePayload(context.Background(),
			filepath.Join(payloadDir, "widget.json"), ValidateOptions{Format: "text"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "[PASS] Widget.v1_0_0.Widget")
		assert.Contains(t, buf.String(), "1 passed, 0 failed")
	})

	t.Run("payload tree passes", func(t *testing.T) {
		t.Parallel()
		mgr, buf := newTestManager(t, metaDir)

		err := mgr.ValidatePayload(context.Background(), payloadDir, ValidateOptions{Format: "text"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "1 passed, 0 failed")
	})

	t.Run("non-conforming payload fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(testBadPayloadJSON), 0o600))

		mgr, buf := newTestManager(t, metaDir)
		err := mgr.ValidatePayload(context.Background(), bad, ValidateOptions{Format: "text"})

		var failed *schema.ValidationFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, 1, failed.Failed)
		assert.Contains(t, buf.String(), "[FAIL] Widget.v1_0_0.Widget")
	})

	t.Run("lenient mode records non-conforming values", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(testBadPayloadJSON), 0o600))

		mgr, buf := newTestManager(t, metaDir)
		err := mgr.ValidatePayload(context.Background(), bad, ValidateOptions{Format: "text", Lenient: true})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "1 passed, 0 failed")
	})

	t.Run("type override applies to untyped payloads", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		untyped := filepath.Join(dir, "untyped.json")
		require.NoError(t, os.WriteFile(untyped, []byte(`{"Id": "3", "Count": 7}`), 0o600))

		mgr, buf := newTestManager(t, metaDir)
		err := mgr.ValidatePayload(context.Background(), untyped,
			ValidateOptions{Format: "text", TypeOverride: "Widget.v1_0_0.Widget"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "1 passed, 0 failed")
	})

	t.Run("json format", func(t *testing.T) {
		t.Parallel()
		mgr, buf := newTestManager(t, metaDir)

		err := mgr.ValidatePayload(context.Background(),
			filepath.Join(payloadDir, "widget.json"), ValidateOptions{Format: "json"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"totalPassed": 1`)
		assert.Contains(t, buf.String(), `"/redfish/v1/Widgets/1"`)
	})

	t.Run("missing target errors", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newTestManager(t, metaDir)

		err := mgr.ValidatePayload(context.Background(), filepath.Join(t.TempDir(), "missing.json"),
			ValidateOptions{Format: "text"})
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestCLIManager_Inspect(t *testing.T) {
	t.Parallel()

	metaDir, _ := writeTestWorkspace(t)

	t.Run("text skeleton", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newTestManager(t, metaDir)

		out, err := mgr.Inspect("Widget.v1_0_0.Widget", "text")
		require.NoError(t, err)

		text := string(out)
		assert.Contains(t, text, "Widget.v1_0_0.Widget (EntityType)")
		assert.Contains(t, text, "Base chain:")
		assert.Contains(t, text, "Widget.Widget")
		assert.Contains(t, text, "Id")
		assert.Contains(t, text, "required")
	})

	t.Run("json skeleton", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newTestManager(t, metaDir)

		out, err := mgr.Inspect("#Widget.v1_0_0.Widget", "json")
		require.NoError(t, err)

		var desc map[string]any
		require.NoError(t, json.Unmarshal(out, &desc))
		assert.Equal(t, "Widget.v1_0_0.Widget", desc["name"])
		assert.Equal(t, "EntityType", desc["kind"])
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newTestManager(t, metaDir)

		_, err := mgr.Inspect("Gadget.v1_0_0.Gadget", "text")
		var missing *schema.MissingSchemaError
		require.ErrorAs(t, err, &missing)
	})
}

func TestCLIManager_Crosscheck(t *testing.T) {
	t.Parallel()

	metaDir, payloadDir := writeTestWorkspace(t)

	const widgetSchema = `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["Id"]
	}`

	writePack := func(t *testing.T, files map[string]string) string {
		t.Helper()
		dir := t.TempDir()
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
		}
		return dir
	}

	t.Run("payload passes against versioned schema file", func(t *testing.T) {
		t.Parallel()
		packDir := writePack(t, map[string]string{"Widget.v1_0_0.json": widgetSchema})
		mgr, buf := newTestManager(t, metaDir)

		err := mgr.Crosscheck(context.Background(), packDir,
			filepath.Join(payloadDir, "widget.json"), ValidateOptions{})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "✓")
		assert.Contains(t, buf.String(), "(Widget.v1_0_0.json)")
		assert.Contains(t, buf.String(), "1 payload(s) checked, 0 failed")
	})

	t.Run("falls back to unversioned schema file", func(t *testing.T) {
		t.Parallel()
		packDir := writePack(t, map[string]string{"Widget.json": widgetSchema})
		mgr, buf := newTestManager(t, metaDir)

		err := mgr.Crosscheck(context.Background(), packDir, payloadDir, ValidateOptions{})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "(Widget.json)")
	})

	t.Run("non-conforming payload fails", func(t *testing.T) {
		t.Parallel()
		packDir := writePack(t, map[string]string{"Widget.json": widgetSchema})
		dir := t.TempDir()
		missingID := filepath.Join(dir, "missing-id.json")
		require.NoError(t, os.WriteFile(missingID,
			[]byte(`{"@odata.type": "#Widget.v1_0_0.Widget", "Name": "nameless"}`), 0o600))

		mgr, buf := newTestManager(t, metaDir)
		err := mgr.Crosscheck(context.Background(), packDir, missingID, ValidateOptions{})

		var failed *schema.ValidationFailedError
		require.ErrorAs(t, err, &failed)
		assert.Contains(t, buf.String(), "✗")
	})

	t.Run("no pack configured", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newTestManager(t, metaDir)

		err := mgr.Crosscheck(context.Background(), "", payloadDir, ValidateOptions{})
		var missing *config.MissingPropertyError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("missing pack directory", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newTestManager(t, metaDir)

		err := mgr.Crosscheck(context.Background(), filepath.Join(t.TempDir(), "nope"),
			payloadDir, ValidateOptions{})
		var packErr *validator.PackLoadError
		require.ErrorAs(t, err, &packErr)
	})

	t.Run("pack configured in config file", func(t *testing.T) {
		t.Parallel()
		packDir := writePack(t, map[string]string{"Widget.json": widgetSchema})

		catalog, err := schema.Load(metaDir)
		require.NoError(t, err)
		cfg := config.Default()
		cfg.JSONSchemaPackDir = packDir

		mgr := NewCLIManager(slog.New(slog.NewTextHandler(io.Discard, nil)), catalog, cfg)
		buf := &syncBuffer{}
		mgr.reporterWriter = buf

		require.NoError(t, mgr.Crosscheck(context.Background(), "", payloadDir, ValidateOptions{}))
		assert.Contains(t, buf.String(), "✓")
	})
}

func TestCLIManager_WatchValidation(t *testing.T) {
	t.Parallel()

	t.Run("revalidates on payload change", func(t *testing.T) {
		t.Parallel()
		metaDir, payloadDir := writeTestWorkspace(t)
		mgr, buf := newTestManager(t, metaDir)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ready := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- mgr.WatchValidation(ctx, payloadDir, ValidateOptions{Format: "text"}, ready)
		}()

		select {
		case <-ready:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher never became ready")
		}

		// Touch the payload to trigger revalidation of that file
		require.NoError(t, os.WriteFile(filepath.Join(payloadDir, "widget.json"),
			[]byte(testPayloadJSON), 0o600))

		assert.Eventually(t, func() bool {
			return bytes.Contains([]byte(buf.String()), []byte("RSV VALIDATION REPORT"))
		}, 5*time.Second, 50*time.Millisecond)

		cancel()
		err := <-done
		require.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("missing target errors", func(t *testing.T) {
		t.Parallel()
		metaDir, _ := writeTestWorkspace(t)
		mgr, _ := newTestManager(t, metaDir)

		err := mgr.WatchValidation(context.Background(),
			filepath.Join(t.TempDir(), "missing"), ValidateOptions{}, nil)
		require.Error(t, err)
	})
}
