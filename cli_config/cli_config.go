package cli_config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	CheckForUpdates      bool `yaml:"check_for_updates"`
	NoColor              bool `yaml:"no_color"`
	ShowUnchangedOkTasks bool `yaml:"show_unchanged_ok_tasks"`
}

var (
	UnsupportedTypeErr = errors.New("Invalid env var config setting: value is an unsupported type.")
	CouldNotParseErr   = errors.New("Invalid env var config setting: failed to parse value")
	InvalidConfigErr   = errors.New("Invalid config file")
)

func NewConfig(defaultConfig Config) Config {
	return defaultConfig
}

func (c *Config) LoadFile(path string) error {
	configYaml, err := os.ReadFile(path)

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := yaml.Unmarshal(configYaml, &c); err != nil {
		return fmt.Errorf("%w: %s", InvalidConfigErr, err)
	}

	return nil
}

func (c *Config) LoadEnv(prefix string) error {
	structType := reflect.ValueOf(c).Elem()
	fields := reflect.VisibleFields(structType.Type())

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		originalKey := parts[0]
		value := parts[1]

		key := strings.TrimPrefix(originalKey, prefix)

		if originalKey == key {
			// key is unchanged and didn't start with prefix
			continue
		}

		for _, field := range fields {
			if strings.ToLower(key) == field.Tag.Get("yaml") {
				structValue := structType.FieldByName(field.Name)

				if !structValue.CanSet() {
					continue
				}

				switch field.Type.Kind() {
				case reflect.Bool:
					val, err := strconv.ParseBool(value)

					if err != nil {
						return fmt.Errorf("%w '%s'\n'%s' can't be parsed as a boolean", CouldNotParseErr, env, value)
					}

					structValue.SetBool(val)
				case reflect.Int:
					val, err := strconv.ParseInt(value, 10, 32)

					if err != nil {
						return fmt.Errorf("%w '%s'\n'%s' can't be parsed as an integer", CouldNotParseErr, env, value)
					}

					structValue.SetInt(val)
				case reflect.String:
					structValue.SetString(value)
				default:
					return fmt.Errorf("%w\n%s setting of type %s is unsupported.", UnsupportedTypeErr, env, field.Type.String())
				}
			}
		}
	}

	return nil
}
