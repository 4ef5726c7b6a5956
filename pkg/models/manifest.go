package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists the statement sources of one run plus the YNAB push target.
type Manifest struct {
	Sources []Statement `yaml:"sources"`
	YNAB    YNABConfig  `yaml:"ynab"`
}

// YNABConfig holds the YNAB push settings. The token itself lives in the
// environment variable named by TokenEnv.
type YNABConfig struct {
	BudgetID  string `yaml:"budget_id"`
	AccountID string `yaml:"account_id"`
	TokenEnv  string `yaml:"token_env"`
}

// Statement is one source entry: the statement file plus the account
// identity attached to every transaction it yields.
type Statement struct {
	Name          string `yaml:"name"`
	FilePath      string `yaml:"file"`
	AccountNumber string `yaml:"account_number"`
	AccountName   string `yaml:"account_name"`
}

// File returns the absolute path to the statement file, expanding ~.
func (s *Statement) File() (string, error) {
	if strings.HasPrefix(s.FilePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.FilePath[2:]), nil
	}
	return s.FilePath, nil
}

// Read loads the statement file contents and its base filename.
func (s *Statement) Read() ([]byte, string, error) {
	path, err := s.File()
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read statement file %s: %w", path, err)
	}
	return data, filepath.Base(path), nil
}

// ManifestFromFile reads a manifest from a YAML file.
func ManifestFromFile(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}
