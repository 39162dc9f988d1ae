package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/identifier"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/syncpolicy"
)

const (
	FileName  = "antigravity"
	EnvPrefix = "ANTIGRAVITY"
)

var fileExts = []string{"yaml", "yml"}

type Config struct {
	Project    Project  `mapstructure:"project"`
	Sync       Sync     `mapstructure:"sync"`
	References []string `mapstructure:"references"`
	Editor     Editor   `mapstructure:"editor"`
	Watch      Watch    `mapstructure:"watch"`
	Batch      bool     `mapstructure:"batch"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type Project struct {
	Name string `mapstructure:"name"`
	Root string `mapstructure:"root"`
	// Manifest, when set, replaces Assets scanning with a module manifest.
	Manifest string `mapstructure:"manifest"`
}

type Sync struct {
	Extensions []string `mapstructure:"extensions"`
	Salt       string   `mapstructure:"salt"`
}

type Editor struct {
	Path string `mapstructure:"path"`
}

type Watch struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Ignore   []string      `mapstructure:"ignore"`
}

func Default() *Config {
	return &Config{
		Sync: Sync{
			Extensions: []string{syncpolicy.DefaultExtension},
			Salt:       identifier.DefaultSalt,
		},
		Watch: Watch{
			Debounce: 300 * time.Millisecond,
		},
	}
}

type LoadOptions struct {
	// Root is the project directory searched for antigravity.yaml. Empty
	// means the working directory.
	Root string
	// ConfigFile is read exclusively when set and must exist.
	ConfigFile string
	Fs         afero.Fs
}

func Load(root string) (*Config, error) {
	return LoadWithOptions(LoadOptions{Root: root})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		root = wd
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("project.name", defaults.Project.Name)
	v.SetDefault("project.root", defaults.Project.Root)
	v.SetDefault("project.manifest", defaults.Project.Manifest)
	v.SetDefault("sync.extensions", defaults.Sync.Extensions)
	v.SetDefault("sync.salt", defaults.Sync.Salt)
	v.SetDefault("references", defaults.References)
	v.SetDefault("editor.path", defaults.Editor.Path)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("watch.ignore", defaults.Watch.Ignore)
	v.SetDefault("batch", defaults.Batch)

	file := opts.ConfigFile
	if file != "" {
		if ok, _ := afero.Exists(fs, file); !ok {
			return nil, apperrors.NewPath(apperrors.KindConfig, "config file not found", file, nil)
		}
	} else {
		file = findConfigFile(fs, root)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewPath(apperrors.KindConfig, "read config", file, err)
		}
		logger.Debug("Config file found: %s", file)
	} else {
		logger.Debug("No config file found, using default config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.New(apperrors.KindConfig, "parse config", err)
	}
	cfg.File = file

	if cfg.Project.Root == "" {
		cfg.Project.Root = root
	} else if !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Join(root, cfg.Project.Root)
	}
	if cfg.Project.Manifest != "" && !filepath.IsAbs(cfg.Project.Manifest) {
		cfg.Project.Manifest = filepath.Join(cfg.Project.Root, cfg.Project.Manifest)
	}
	if cfg.Sync.Salt == "" {
		cfg.Sync.Salt = defaults.Sync.Salt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Config: %+v", cfg)
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	for _, ext := range c.Sync.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			errs = append(errs, errors.New("sync.extensions contains an empty extension"))
			break
		}
	}
	if len(errs) > 0 {
		return apperrors.New(apperrors.KindConfig, "invalid config", errors.Join(errs...))
	}
	return nil
}

func findConfigFile(fs afero.Fs, root string) string {
	for _, ext := range fileExts {
		p := filepath.Join(root, FileName+"."+ext)
		if ok, _ := afero.Exists(fs, p); ok {
			return p
		}
	}
	return ""
}
