package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefarm/pagefarm/data"
	"github.com/pagefarm/pagefarm/pkg/bulkedit"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONTENT_DIR", "BASE_DOMAIN", "PUBLIC_SCHEME", "PUBLIC_PORT", "ROOT_ALIASES", "BACKUP_S3_BUCKET"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func copySample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, data.Content()))
	return dir
}

func TestValidate(t *testing.T) {
	cleanEnv(t)

	t.Run("embedded sample", func(t *testing.T) {
		out, err := execute(t, "validate")
		require.NoError(t, err)
		assert.Equal(t, "ok: 5 locations in 3 states, 4 services, 2 cost guides\n", out)
	})

	t.Run("directory flag", func(t *testing.T) {
		dir := copySample(t)
		_, err := execute(t, "validate", "--dir", dir)
		require.NoError(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := execute(t, "validate", "--dir", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("unknown service block", func(t *testing.T) {
		dir := copySample(t)
		path := filepath.Join(dir, "locations.yaml")
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		raw = bytes.Replace(raw, []byte("slug: roof-repair"), []byte("slug: solar-panels"), 1)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err = execute(t, "validate", "--dir", dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `service block "solar-panels" is not in the catalog`)
	})

	t.Run("location id drifts from its name", func(t *testing.T) {
		dir := copySample(t)
		path := filepath.Join(dir, "locations.yaml")
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		raw = bytes.Replace(raw, []byte("name: Boise"), []byte("name: Boisé City"), 1)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err = execute(t, "validate", "--dir", dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `location "boise-id": id should be "boise-city-id"`)
	})
}

func TestExtractAndApply(t *testing.T) {
	cleanEnv(t)

	dir := copySample(t)
	site := filepath.Join(dir, "site.yaml")
	backups := filepath.Join(t.TempDir(), "backups")

	out, err := execute(t, "extract", site)
	require.NoError(t, err)
	assert.Contains(t, out, "<<<1>>>\n<p>{COMPANY} is a family-owned roofing contractor.")
	assert.Contains(t, out, "<<<5>>>\nLicensed and insured roofers\n")
	assert.NotContains(t, out, "office@example.com", "email values are not prose")

	t.Run("placeholder removed", func(t *testing.T) {
		edits := filepath.Join(t.TempDir(), "edits.txt")
		require.NoError(t, os.WriteFile(edits, []byte("<<<1>>>\n<p>We are a family roofer.</p>\n"), 0o644))
		before, err := os.ReadFile(site)
		require.NoError(t, err)

		_, err = execute(t, "apply", site, edits, "--backup-dir", backups)
		require.ErrorIs(t, err, bulkedit.ErrPlaceholderMismatch)

		after, err := os.ReadFile(site)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.NoDirExists(t, backups)
	})

	t.Run("dry run", func(t *testing.T) {
		edits := filepath.Join(t.TempDir(), "edits.txt")
		require.NoError(t, os.WriteFile(edits, []byte("<<<5>>>\nLicensed, bonded and insured roofers\n"), 0o644))

		out, err := execute(t, "apply", site, edits, "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "tagline: Licensed, bonded and insured roofers")

		raw, err := os.ReadFile(site)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "bonded")
	})

	t.Run("applied with backup", func(t *testing.T) {
		edits := filepath.Join(t.TempDir(), "edits.txt")
		require.NoError(t, os.WriteFile(edits, []byte("<<<5>>>\nLicensed, bonded and insured roofers\n"), 0o644))

		out, err := execute(t, "apply", site, edits, "--backup-dir", backups)
		require.NoError(t, err)
		assert.Contains(t, out, "applied 1 edits")
		assert.Contains(t, out, "backup: site.")

		raw, err := os.ReadFile(site)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "Licensed, bonded and insured roofers")

		entries, err := os.ReadDir(backups)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		_, err = execute(t, "validate", "--dir", dir)
		require.NoError(t, err)
	})
}

func TestRoute(t *testing.T) {
	cleanEnv(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "city service rewrite",
			args: []string{"route", "austin-tx.example.com", "/roof-repair"},
			want: []string{"subdomain-service", "rewrite", "/locations/austin-tx/roof-repair"},
		},
		{
			name: "legacy path redirect",
			args: []string{"route", "example.com", "/locations/austin-tx/about?ref=1"},
			want: []string{"legacy-location-path", "301", "https://austin-tx.example.com/about?ref=1"},
		},
		{
			name: "root home",
			args: []string{"route", "example.com"},
			want: []string{"root-pass-through", "pass"},
		},
		{
			name: "rule listing",
			args: []string{"route", "tx.example.com", "/", "--rules"},
			want: []string{"canonical-host", "false", "subdomain-home", "true", "/states/tx"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	cleanEnv(t)

	dir := copySample(t)
	services := filepath.Join(dir, "services.yaml")
	pages := filepath.Join(dir, "pages.yaml")

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr string
	}{
		{
			name:    "city with service",
			args:    []string{"preview", services, "austin-tx", "--service", "roof-repair"},
			want:    []string{"flashing fixed fast in Austin."},
			notWant: []string{"{CITY}"},
		},
		{
			name: "city page copy",
			args: []string{"preview", pages, "austin-tx"},
			want: []string{"Roofing in Austin, TX", "across Austin", "78701"},
		},
		{
			name: "state code",
			args: []string{"preview", pages, "ia"},
			want: []string{"Roofing in Iowa, IA"},
		},
		{name: "unknown location", args: []string{"preview", pages, "nowhere"}, wantErr: `unknown location "nowhere"`},
		{name: "unknown service", args: []string{"preview", pages, "austin-tx", "--service", "solar"}, wantErr: `unknown service "solar"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}
