package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	pErrors "github.com/zhubert/codechat/internal/errors"
	"github.com/zhubert/codechat/internal/logger"
)

// Setting keys. Each is also readable as CODECHAT_<KEY> and as <KEY> in
// ~/.codechat/codechat.env.
const (
	KeyServerURL      = "server_url"
	KeyRequestTimeout = "request_timeout"
	KeyLogPath        = "log_path"
	KeyDebug          = "debug"
	KeyQuiet          = "quiet"
)

const (
	DefaultServerURL      = "http://localhost:5000"
	DefaultRequestTimeout = 120 * time.Second
)

// Settings are runtime options that are not user preferences.
type Settings struct {
	ServerURL      string        `mapstructure:"server_url" validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	LogPath        string        `mapstructure:"log_path" validate:"required"`
	Debug          bool          `mapstructure:"debug"`
	Quiet          bool          `mapstructure:"quiet"`
}

// NewViper returns a viper instance with defaults, env binding, and the
// optional env file configured. Flags are bound separately with BindFlags.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyServerURL, DefaultServerURL)
	v.SetDefault(KeyRequestTimeout, DefaultRequestTimeout.String())
	v.SetDefault(KeyLogPath, logger.DefaultLogPath)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyQuiet, false)

	v.SetEnvPrefix("CODECHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if dir, err := configDir(); err == nil {
		v.SetConfigFile(filepath.Join(dir, "codechat.env"))
		v.SetConfigType("env")
	}
	return v
}

// BindFlags maps the persistent CLI flags onto their settings keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"server":  KeyServerURL,
		"timeout": KeyRequestTimeout,
		"log":     KeyLogPath,
		"debug":   KeyDebug,
		"quiet":   KeyQuiet,
	}
	for flag, key := range bindings {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// LoadSettings reads the env file if present and decodes all sources into
// Settings. A missing env file is not an error.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, pErrors.E(pErrors.Op("config.LoadSettings"), pErrors.KindConfig, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, pErrors.E(pErrors.Op("config.LoadSettings"), pErrors.KindConfig, err)
	}
	s.ServerURL = strings.TrimRight(s.ServerURL, "/")

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the decoded settings.
func (s *Settings) Validate() error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pErrors.E(pErrors.Op("config.Validate"), pErrors.KindConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("setting '%s' failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return pErrors.E(pErrors.Op("config.Validate"), pErrors.KindConfig, strings.Join(msgs, "; "))
}
