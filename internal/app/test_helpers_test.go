package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
)

// testSchemaXML is a minimal CSDL document declaring Widget.v1_0_0.Widget.
const testSchemaXML = `<?xml version="1.0" encoding="UTF-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
  <edmx:DataServices>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Widget">
      <EntityType Name="Widget" Abstract="true"/>
    </Schema>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Widget.v1_0_0">
      <EntityType Name="Widget" BaseType="Widget.Widget">
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
        <Property Name="Name" Type="Edm.String"/>
        <Property Name="Count" Type="Edm.Int64"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

const testPayloadJSON = `{
  "@odata.type": "#Widget.v1_0_0.Widget",
  "@odata.id": "/redfish/v1/Widgets/1",
  "Id": "1",
  "Name": "First widget",
  "Count": 3
}`

const testBadPayloadJSON = `{
  "@odata.type": "#Widget.v1_0_0.Widget",
  "Id": "2",
  "Count": "not-a-number"
}`

// writeTestWorkspace lays out a metadata directory with one schema document
// and a payloads directory with one conforming payload.
func writeTestWorkspace(t *testing.T) (metaDir, payloadDir string) {
	t.Helper()

	root := t.TempDir()
	metaDir = filepath.Join(root, "metadata")
	payloadDir = filepath.Join(root, "payloads")
	require.NoError(t, os.MkdirAll(metaDir, 0o755))
	require.NoError(t, os.MkdirAll(payloadDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(metaDir, "Widget_v1.xml"), []byte(testSchemaXML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(payloadDir, "widget.json"), []byte(testPayloadJSON), 0o600))

	return metaDir, payloadDir
}

// mockEnvProvider is a test implementation of fs.EnvProvider.
type mockEnvProvider struct {
	values map[string]string
}

func (m *mockEnvProvider) Get(key string) string {
	return m.values[key]
}

// MockManager is a testify mock for the Manager interface, letting command
// tests assert on the exact options the flags produced.
type MockManager struct {
	mock.Mock
	catalog *schema.Catalog
}

func (m *MockManager) Catalog() *schema.Catalog {
	return m.catalog
}

func (m *MockManager) ValidatePayload(ctx context.Context, target string, opts ValidateOptions) error {
	args := m.Called(ctx, target, opts)
	return args.Error(0)
}

func (m *MockManager) WatchValidation(ctx context.Context, target string, opts ValidateOptions,
	readyChan chan<- struct{},
) error {
	args := m.Called(ctx, target, opts, readyChan)
	return args.Error(0)
}

func (m *MockManager) Inspect(name, format string) ([]byte, error) {
	args := m.Called(name, format)
	res, _ := args.Get(0).([]byte)
	return res, args.Error(1)
}

func (m *MockManager) Crosscheck(ctx context.Context, packDir, target string, opts ValidateOptions) error {
	args := m.Called(ctx, packDir, target, opts)
	return args.Error(0)
}
