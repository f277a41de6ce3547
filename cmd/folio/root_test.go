package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	v, err := loadConfig()
	require.NoError(t, err)

	cfg := siteConfig(v)
	assert.Equal(t, "Portfolio", cfg.Name)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, 10*time.Minute, cfg.ContactWindow)
	assert.Equal(t, 180*24*time.Hour, cfg.LogRetention)
}

func TestLoadConfigLegacyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EMAIL_SERVICE", "gmail")
	t.Setenv("EMAIL_USER", "me@gmail.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("CONTACT_EMAIL", "owner@example.com")
	t.Setenv("PORT", "5000")

	v, err := loadConfig()
	require.NoError(t, err)
	cfg := siteConfig(v)
	assert.Equal(t, "gmail", cfg.SMTP.Service)
	assert.Equal(t, "me@gmail.com", cfg.SMTP.Username)
	assert.Equal(t, "app-password", cfg.SMTP.Password)
	assert.Equal(t, "owner@example.com", cfg.OwnerMail)
	assert.Equal(t, ":5000", cfg.Addr)
}

func TestLoadConfigFileAndPrefixedEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folio.yaml"), []byte(`
name: My Work
author: Sam Doe
contact_limit: 3
smtp:
  host: smtp.example.com
  port: 465
`), 0o644))
	t.Setenv("FOLIO_AUTHOR", "Alex Roe")
	t.Setenv("FOLIO_SMTP_USERNAME", "relay@example.com")

	v, err := loadConfig()
	require.NoError(t, err)
	cfg := siteConfig(v)
	assert.Equal(t, "My Work", cfg.Name)
	assert.Equal(t, "Alex Roe", cfg.Author)
	assert.Equal(t, 3, cfg.ContactLimit)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "relay@example.com", cfg.SMTP.Username)
}
