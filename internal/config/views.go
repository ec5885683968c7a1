package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const viewsFileName = "views.yaml"

// View is a saved database query: which database to read, which columns to
// show and how to filter the entries.
type View struct {
	Name        string   `yaml:"name"`
	Database    string   `yaml:"database"`
	Columns     []string `yaml:"columns,omitempty"`
	Filter      string   `yaml:"filter,omitempty"`
	Limit       int      `yaml:"limit,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

type Views struct {
	Views []View `yaml:"views"`
}

func ViewsPath() (string, error) {
	return pathFor(viewsFileName)
}

// LoadViews reads the saved views file. A missing file yields no views.
func LoadViews() (Views, error) {
	var views Views

	path, err := ViewsPath()
	if err != nil {
		return views, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return views, nil
		}
		return views, err
	}
	if err := yaml.Unmarshal(data, &views); err != nil {
		return views, fmt.Errorf("parse %s: %w", path, err)
	}
	return views, nil
}

func SaveViews(views Views) error {
	path, err := ViewsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(views)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Find looks a view up by name, ignoring case.
func (v Views) Find(name string) (View, bool) {
	for _, view := range v.Views {
		if strings.EqualFold(view.Name, strings.TrimSpace(name)) {
			return view, true
		}
	}
	return View{}, false
}

// Upsert replaces the view with the same name or appends it. It reports
// whether an existing view was replaced.
func (v *Views) Upsert(view View) (bool, error) {
	view.Name = strings.TrimSpace(view.Name)
	view.Database = strings.TrimSpace(view.Database)
	if view.Name == "" {
		return false, fmt.Errorf("view name is required")
	}
	if view.Database == "" {
		return false, fmt.Errorf("view database is required")
	}
	if view.Limit < 0 {
		return false, fmt.Errorf("view limit must not be negative")
	}

	for i := range v.Views {
		if strings.EqualFold(v.Views[i].Name, view.Name) {
			v.Views[i] = view
			return true, nil
		}
	}
	v.Views = append(v.Views, view)
	return false, nil
}

// Remove deletes the named view and reports whether it existed.
func (v *Views) Remove(name string) bool {
	name = strings.TrimSpace(name)
	for i := range v.Views {
		if strings.EqualFold(v.Views[i].Name, name) {
			v.Views = append(v.Views[:i], v.Views[i+1:]...)
			return true
		}
	}
	return false
}
