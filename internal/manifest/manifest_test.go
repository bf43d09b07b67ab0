package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/envup/internal/model"
)

// TestParse verifies the requirements-line forms the parser must accept
// and the ones it must reject.
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []model.PackageSpec
		wantErr string
	}{
		{
			name:  "unpinned package",
			input: "pandas\n",
			want:  []model.PackageSpec{{Name: "pandas", Raw: "pandas"}},
		},
		{
			name:  "pinned package",
			input: "pandas==2.2.0\n",
			want:  []model.PackageSpec{{Name: "pandas", Constraint: "==2.2.0", Raw: "pandas==2.2.0"}},
		},
		{
			name:  "constraint with spaces is normalized",
			input: "polars >= 0.20\n",
			want:  []model.PackageSpec{{Name: "polars", Constraint: ">=0.20", Raw: "polars >= 0.20"}},
		},
		{
			name:  "multiple constraints",
			input: "pyarrow>=15,<17\n",
			want:  []model.PackageSpec{{Name: "pyarrow", Constraint: ">=15,<17", Raw: "pyarrow>=15,<17"}},
		},
		{
			name:  "extras suffix",
			input: "uvicorn[standard]>=0.29\n",
			want:  []model.PackageSpec{{Name: "uvicorn[standard]", Constraint: ">=0.29", Raw: "uvicorn[standard]>=0.29"}},
		},
		{
			name:  "comments and blanks are skipped",
			input: "# analysis stack\n\npandas\n  # trailing note\nseaborn\n",
			want: []model.PackageSpec{
				{Name: "pandas", Raw: "pandas"},
				{Name: "seaborn", Raw: "seaborn"},
			},
		},
		{
			name:  "trailing comment is stripped",
			input: "matplotlib  # plotting\n",
			want:  []model.PackageSpec{{Name: "matplotlib", Raw: "matplotlib  # plotting"}},
		},
		{
			name:  "directive lines are pip's business",
			input: "-r base.txt\n-e .\n--extra-index-url https://example.com/simple\nstatsmodels\n",
			want:  []model.PackageSpec{{Name: "statsmodels", Raw: "statsmodels"}},
		},
		{
			name:  "environment marker is ignored",
			input: "openpyxl; python_version >= '3.10'\n",
			want:  []model.PackageSpec{{Name: "openpyxl", Raw: "openpyxl; python_version >= '3.10'"}},
		},
		{
			name:    "garbage entry is rejected with line number",
			input:   "pandas\n=== not a requirement ===\n",
			wantErr: "line 2",
		},
		{
			name:    "name must not start with punctuation",
			input:   ".hidden\n",
			wantErr: "invalid requirement",
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLoad verifies file-level behavior: a realistic manifest on disk and
// the not-found error message.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")

	content := `# Longitudinal analysis dependencies
pandas>=2.0
polars
scikit-learn
statsmodels
seaborn
matplotlib
openpyxl
pyarrow
jupyter
rpy2>=3.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	specs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, specs, 10)
	assert.Equal(t, "pandas", specs[0].Name)
	assert.Equal(t, ">=2.0", specs[0].Constraint)
	assert.Equal(t, "rpy2", specs[9].Name)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest not found")
}
