package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pagefarm/pagefarm/pkg/backup"
	"github.com/pagefarm/pagefarm/pkg/bulkedit"
	"github.com/pagefarm/pagefarm/pkg/content"
)

func newExtractCmd() *cobra.Command {
	var (
		out  string
		skip []string
	)
	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Write the numbered prose strings of a content file",
		Long: "Extract numbers every prose string of a JSON or YAML content file and writes\n" +
			"them as <<<N>>> blocks for rewriting. Placeholders must survive the rewrite.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			segs := bulkedit.Extract(tree, bulkedit.WithSkipKeys(skip...))
			if err := bulkedit.WriteNumbered(w, segs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d segments\n", len(segs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "extra object keys to leave out")
	return cmd
}

func newApplyCmd(cfg *config) *cobra.Command {
	var (
		backupDir string
		dryRun    bool
		skip      []string
	)
	cmd := &cobra.Command{
		Use:   "apply FILE EDITS",
		Short: "Apply rewritten prose to a content file",
		Long: "Apply reads <<<N>>> blocks from EDITS and replaces the matching strings of FILE.\n" +
			"A block whose placeholders differ from the original rejects the whole edit.\n" +
			"The previous file is saved to S3 when BACKUP_S3_BUCKET is set, else to --backup-dir.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, editsFile := args[0], args[1]
			tree, err := readTree(file)
			if err != nil {
				return err
			}
			edits, err := readEdits(editsFile)
			if err != nil {
				return err
			}

			updated, err := bulkedit.Apply(tree, edits, bulkedit.WithSkipKeys(skip...))
			if err != nil {
				return err
			}
			encoded, err := encodeTree(updated, filepath.Ext(file))
			if err != nil {
				return err
			}
			if err := checkFile(file, encoded); err != nil {
				return fmt.Errorf("edited file does not load: %w", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				_, err := out.Write(encoded)
				return err
			}

			store, err := cfg.backupStore(backupDir, file)
			if err != nil {
				return err
			}
			key, err := backup.WriteFile(cmd.Context(), store, file, encoded, 0o644)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d edits to %s\n", len(edits), file)
			if key != "" {
				fmt.Fprintf(out, "backup: %s\n", key)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "local backup directory (default .backups next to FILE)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the edited file instead of writing it")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "extra object keys left out at extract time")
	return cmd
}

func (c *config) backupStore(dir, file string) (backup.Store, error) {
	if c.Backup.Bucket != "" {
		return backup.NewS3Store(c.Backup)
	}
	if dir == "" {
		dir = filepath.Join(filepath.Dir(file), ".backups")
	}
	return backup.NewLocalStore(dir), nil
}

func readTree(file string) (any, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := content.Decode(raw, filepath.Ext(file), &tree); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return tree, nil
}

func readEdits(file string) (map[int]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bulkedit.ParseNumbered(f)
}

func encodeTree(tree any, ext string) ([]byte, error) {
	var buf bytes.Buffer
	switch ext {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// checkFile loads the directory of file with data in place of it, so an edit
// that breaks the schema or introduces unknown placeholders is never written.
func checkFile(file string, data []byte) error {
	name := filepath.Base(file)
	fsys := overlay{FS: os.DirFS(filepath.Dir(file)), name: name, data: data}
	if baseName(name) == "locations" {
		_, err := loadRegistry(fsys)
		return err
	}
	_, err := content.Load(fsys)
	return err
}

// overlay serves data for name and everything else from FS.
type overlay struct {
	fs.FS
	name string
	data []byte
}

func (o overlay) ReadFile(name string) ([]byte, error) {
	if name == o.name {
		return o.data, nil
	}
	return fs.ReadFile(o.FS, name)
}
