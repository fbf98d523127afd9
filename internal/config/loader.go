// Package config loads client and server settings from defaults, an optional
// YAML file, OPTIMIZEAI_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения, например OPTIMIZEAI_SERVER_URL
const EnvPrefix = "OPTIMIZEAI"

// Loader оборачивает viper: defaults -> файл -> env -> флаги
type Loader struct {
	flags     map[string]*pflag.Flag
	envPrefix string
}

// Loaded описывает результат загрузки
type Loaded struct {
	ConfigFileUsed string
}

// NewLoader создает загрузчик с префиксом переменных окружения
func NewLoader(envPrefix string) *Loader {
	return &Loader{
		envPrefix: envPrefix,
		flags:     make(map[string]*pflag.Flag),
	}
}

// BindFlag связывает ключ конфигурации с флагом командной строки
// Значение флага побеждает только если флаг был явно указан
func (l *Loader) BindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	l.flags[key] = flag
}

// Load заполняет target. Отсутствующий файл конфигурации не является ошибкой,
// если путь не был указан явно
func (l *Loader) Load(configFile string, defaults map[string]any, target any) (Loaded, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return Loaded{}, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.MergeInConfig(); err != nil {
			return Loaded{}, fmt.Errorf("failed to read configuration: %w", err)
		}
	} else {
		v.SetConfigName("optimizeai")
		v.AddConfigPath(".")
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Loaded{}, fmt.Errorf("failed to read configuration: %w", err)
			}
		}
	}

	if err := v.Unmarshal(target); err != nil {
		return Loaded{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return Loaded{ConfigFileUsed: v.ConfigFileUsed()}, nil
}
