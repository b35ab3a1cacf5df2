package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all redline configuration. Every field has a default so an
// empty file (or no file at all) yields a runnable server, except the
// document store URL which must be set.
type Config struct {
	Port    string        `yaml:"port"`
	History HistoryConfig `yaml:"history"`
	Docs    DocsConfig    `yaml:"docs"`
	Audit   AuditConfig   `yaml:"audit"`
	Auth    AuthConfig    `yaml:"auth"`
	MCP     MCPConfig     `yaml:"mcp"`
}

type HistoryConfig struct {
	MaxPerDocument int `yaml:"max_per_document"`
}

// DocsConfig points at the remote document store. The token is usually
// injected through DOCS_TOKEN rather than written to the file.
type DocsConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type AuditConfig struct {
	DBPath string `yaml:"db_path"`
}

// AuthConfig protects the HTTP inspection endpoints with Basic Auth.
// PasswordHash is a bcrypt hash; when empty, the endpoints are open.
type AuthConfig struct {
	User         string `yaml:"user"`
	PasswordHash string `yaml:"password_hash"`
}

type MCPConfig struct {
	Transport string `yaml:"transport"` // "stdio" or "" (disabled)
}

func (c *Config) defaults() {
	if c.Port == "" {
		c.Port = "8086"
	}
	if c.History.MaxPerDocument <= 0 {
		c.History.MaxPerDocument = 50
	}
	if c.Audit.DBPath == "" {
		c.Audit.DBPath = "db/audit.db"
	}
	if c.Auth.User == "" {
		c.Auth.User = "redline"
	}
}

// applyEnv lets the environment override file values. Deployment scripts
// set these; the file carries the stable parts.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DOCS_BASE_URL"); v != "" {
		c.Docs.BaseURL = v
	}
	if v := os.Getenv("DOCS_TOKEN"); v != "" {
		c.Docs.Token = v
	}
	if v := os.Getenv("AUDIT_DB"); v != "" {
		c.Audit.DBPath = v
	}
	if v := os.Getenv("AUTH_USER"); v != "" {
		c.Auth.User = v
	}
	if v := os.Getenv("AUTH_PASSWORD_HASH"); v != "" {
		c.Auth.PasswordHash = v
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		c.MCP.Transport = v
	}
}

func (c *Config) validate() error {
	if c.Docs.BaseURL == "" {
		return fmt.Errorf("docs.base_url (or DOCS_BASE_URL) is required")
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
