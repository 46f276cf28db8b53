package context_analyzer

import (
	"errors"
	"testing"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifest_ReactProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"package.json": `{
  "name": "demo",
  "dependencies": {"react": "^18.2.0", "axios": "^1.6.0"},
  "devDependencies": {"jest": "^29.0.0"}
}`,
	})

	manifest, err := ReadManifest(root, models.DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "React", manifest.Framework)
	assert.Equal(t, map[string]string{"react": "^18.2.0", "axios": "^1.6.0"}, manifest.Dependencies)
}

func TestReadManifest_NoDependenciesSection(t *testing.T) {
	root := writeProject(t, map[string]string{"package.json": `{"name": "demo"}`})

	manifest, err := ReadManifest(root, models.DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "Unknown", manifest.Framework)
	assert.NotNil(t, manifest.Dependencies)
	assert.Empty(t, manifest.Dependencies)
}

func TestReadManifest_Missing(t *testing.T) {
	manifest, err := ReadManifest(t.TempDir(), models.DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "Unknown", manifest.Framework)
	assert.Empty(t, manifest.Dependencies)
}

func TestReadManifest_Malformed(t *testing.T) {
	root := writeProject(t, map[string]string{"package.json": `{"dependencies": {"react": `})

	manifest, err := ReadManifest(root, models.DefaultRules())
	require.Error(t, err)

	var manifestErr *ManifestError
	assert.True(t, errors.As(err, &manifestErr))
	assert.Equal(t, "Unknown", manifest.Framework)
	assert.NotNil(t, manifest.Dependencies)
	assert.Empty(t, manifest.Dependencies)
}

func TestDetectFramework(t *testing.T) {
	rules := models.DefaultRules()

	assert.Equal(t, "React", DetectFramework(map[string]string{"react": "18"}, rules))
	assert.Equal(t, "Unknown", DetectFramework(map[string]string{"react-dom": "18", "vue": "3"}, rules))
	assert.Equal(t, "Unknown", DetectFramework(nil, rules))

	rules.FrameworkDependency = "vue"
	rules.FrameworkLabel = "Vue"
	assert.Equal(t, "Vue", DetectFramework(map[string]string{"vue": "3"}, rules))
}
