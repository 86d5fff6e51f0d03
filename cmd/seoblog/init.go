package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	SiteName    string
	SiteURL     string
	ContentRoot string
	Marker      string
}

func (a *app) initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter config and blog index",
		Long: `Write .seoblog.yaml and blog/index.html (with the card insertion marker)
into dir, which defaults to the current directory. Existing files are left
alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			name, _ := cmd.Flags().GetString("name")
			url, _ := cmd.Flags().GetString("url")
			return a.runInit(dir, scaffoldData{
				SiteName:    name,
				SiteURL:     strings.TrimRight(url, "/"),
				ContentRoot: "blog",
				Marker:      seoblog.DefaultIndexMarker,
			})
		},
	}
	cmd.Flags().String("name", "My Site", "site name, also the title brand suffix")
	cmd.Flags().String("url", "https://www.example.com", "canonical site URL")
	return cmd
}

func (a *app) runInit(dir string, data scaffoldData) error {
	root := "templates"
	return fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Compute the output path, stripping the .tmpl suffix.
		outPath := filepath.Join(dir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")
		if filepath.Base(outPath) == "seoblog.yaml" {
			outPath = filepath.Join(filepath.Dir(outPath), ".seoblog.yaml")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		if _, err := os.Stat(outPath); err == nil {
			a.printer.Warning("%s exists, skipped", outPath)
			return nil
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		a.printer.Print("  created %s", outPath)
		return nil
	})
}
