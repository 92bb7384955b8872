// Package config resolves the layered jrnl configuration: built-in defaults,
// the config file, per-journal overrides and JRNL_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultJournal is the journal used when none is named.
const DefaultJournal = "default"

const (
	keyJournals      = "journals"
	keyEditor        = "editor"
	keyEncrypt       = "encrypt"
	keyTagSymbols    = "tagsymbols"
	keyTimeFormat    = "timeformat"
	keyDefaultHour   = "default_hour"
	keyDefaultMinute = "default_minute"
	keyHighlight     = "highlight"
	keyLineWrap      = "linewrap"

	envPrefix   = "JRNL"
	envPassword = "JRNL_PASSWORD"
	envConfig   = "JRNL_CONFIG"
)

// overridable are the keys a journal block may override.
var overridable = []string{
	keyEditor, keyEncrypt, keyTagSymbols, keyTimeFormat,
	keyDefaultHour, keyDefaultMinute, keyHighlight, keyLineWrap,
}

// Journal is the resolved configuration of one journal.
type Journal struct {
	Name          string
	Path          string
	Editor        string
	Encrypt       bool
	TagSymbols    string
	TimeFormat    string
	DefaultHour   int
	DefaultMinute int
	Highlight     bool
	LineWrap      int
	// Password is transient: read from JRNL_PASSWORD, never written.
	Password string
	// Scoped is set when the journal has its own config block.
	Scoped bool
}

// Config is a loaded configuration file.
type Config struct {
	v    *viper.Viper
	path string
}

// DefaultPath is $XDG_CONFIG_HOME/jrnl, falling back to ~/.jrnl_config.
func DefaultPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jrnl")
	}
	p, err := homedir.Expand("~/.jrnl_config")
	if err != nil {
		return ".jrnl_config"
	}
	return p
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyEditor, "")
	v.SetDefault(keyEncrypt, false)
	v.SetDefault(keyTagSymbols, "@")
	v.SetDefault(keyTimeFormat, "2006-01-02 15:04")
	v.SetDefault(keyDefaultHour, 9)
	v.SetDefault(keyDefaultMinute, 0)
	v.SetDefault(keyHighlight, true)
	v.SetDefault(keyLineWrap, 79)
}

// newViper reads path as JSON whatever its extension; ~/.jrnl_config has none
// viper recognizes.
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return v
}

// writeSettings stores v's settings as indented JSON, replacing path
// atomically.
func writeSettings(v *viper.Viper, path string) error {
	data, err := json.MarshalIndent(v.AllSettings(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads the config file at path (DefaultPath when empty). A missing file
// is installed with defaults first and announced through notify.
func Load(path string, notify func(string)) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := install(path); err != nil {
			return nil, err
		}
		if notify != nil {
			notify(fmt.Sprintf("[Configuration written to %s]", path))
		}
	}

	v := newViper(path)
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("configuration loaded")
	return &Config{v: v, path: path}, nil
}

func install(path string) error {
	v := newViper(path)
	setDefaults(v)
	v.Set(keyJournals, map[string]any{DefaultJournal: "~/journal.txt"})
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := writeSettings(v, path); err != nil {
		return fmt.Errorf("config: install %s: %w", path, err)
	}
	return nil
}

// Path is the config file location.
func (c *Config) Path() string {
	return c.path
}

// Journals lists the configured journal names.
func (c *Config) Journals() []string {
	m := c.v.GetStringMap(keyJournals)
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Journal resolves the settings of the named journal. A journal entry is
// either a path string or a block whose keys override the top level ones.
func (c *Config) Journal(name string) (Journal, error) {
	if name == "" {
		name = DefaultJournal
	}
	raw := c.v.Get(keyJournals + "." + name)
	if raw == nil {
		return Journal{}, fmt.Errorf("config: no journal named %q in %s", name, c.path)
	}

	j := Journal{
		Name:          name,
		Editor:        c.v.GetString(keyEditor),
		Encrypt:       c.v.GetBool(keyEncrypt),
		TagSymbols:    c.v.GetString(keyTagSymbols),
		TimeFormat:    c.v.GetString(keyTimeFormat),
		DefaultHour:   c.v.GetInt(keyDefaultHour),
		DefaultMinute: c.v.GetInt(keyDefaultMinute),
		Highlight:     c.v.GetBool(keyHighlight),
		LineWrap:      c.v.GetInt(keyLineWrap),
		Password:      os.Getenv(envPassword),
	}

	switch val := raw.(type) {
	case string:
		j.Path = val
	case map[string]any:
		j.Scoped = true
		sub := c.v.Sub(keyJournals + "." + name)
		path, _ := val["journal"].(string)
		if path == "" {
			return Journal{}, fmt.Errorf("config: journal %q has no \"journal\" path", name)
		}
		j.Path = path
		for _, key := range overridable {
			if !sub.IsSet(key) {
				continue
			}
			switch key {
			case keyEditor:
				j.Editor = sub.GetString(key)
			case keyEncrypt:
				j.Encrypt = sub.GetBool(key)
			case keyTagSymbols:
				j.TagSymbols = sub.GetString(key)
			case keyTimeFormat:
				j.TimeFormat = sub.GetString(key)
			case keyDefaultHour:
				j.DefaultHour = sub.GetInt(key)
			case keyDefaultMinute:
				j.DefaultMinute = sub.GetInt(key)
			case keyHighlight:
				j.Highlight = sub.GetBool(key)
			case keyLineWrap:
				j.LineWrap = sub.GetInt(key)
			}
		}
	default:
		return Journal{}, fmt.Errorf("config: journal %q must be a path or an object, got %T", name, raw)
	}

	expanded, err := homedir.Expand(j.Path)
	if err != nil {
		return Journal{}, fmt.Errorf("config: journal %q: %w", name, err)
	}
	j.Path = expanded
	return j, nil
}

// SetEncrypt persists the encrypt flag of the named journal: inside its own
// block when it has one, otherwise at the top level. Only the file's own
// settings are written, never environment overrides or the password.
func (c *Config) SetEncrypt(name string, on bool) error {
	if name == "" {
		name = DefaultJournal
	}
	file := newViper(c.path)
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", c.path, err)
	}

	key := keyEncrypt
	if _, scoped := file.Get(keyJournals + "." + name).(map[string]any); scoped {
		key = keyJournals + "." + name + "." + keyEncrypt
	}
	file.Set(key, on)
	if err := writeSettings(file, c.path); err != nil {
		return fmt.Errorf("config: write %s: %w", c.path, err)
	}
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: reload %s: %w", c.path, err)
	}
	log.Debug().Str("journal", name).Str("key", key).Bool("value", on).Msg("configuration updated")
	return nil
}
