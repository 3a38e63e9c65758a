package config

import (
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

func processFile(cfg interface{}, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	switch {
	case strings.HasSuffix(file, ".yaml") || strings.HasSuffix(file, ".yml"):
		return yaml.Unmarshal(data, cfg)
	case strings.HasSuffix(file, ".toml"):
		return toml.Unmarshal(data, cfg)
	case strings.HasSuffix(file, ".json"):
		return json.Unmarshal(data, cfg)
	default:
		if err := toml.Unmarshal(data, cfg); err == nil {
			return nil
		}
		if err := json.Unmarshal(data, cfg); err == nil {
			return nil
		}
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return nil
		}
		return errors.New("failed to decode config")
	}
}

// processDefaults fills blank fields from `default:` struct tags, descending
// into nested structs.
func processDefaults(cfg interface{}) error {
	cfgValue := reflect.Indirect(reflect.ValueOf(cfg))
	if cfgValue.Kind() != reflect.Struct {
		return errors.New("invalid config, should be struct")
	}

	cfgType := cfgValue.Type()
	for i := 0; i < cfgType.NumField(); i++ {
		var (
			fieldStruct = cfgType.Field(i)
			field       = cfgValue.Field(i)
		)

		if !field.CanAddr() || !field.CanInterface() {
			continue
		}

		if isBlank := reflect.DeepEqual(field.Interface(), reflect.Zero(field.Type()).Interface()); isBlank {
			if value := fieldStruct.Tag.Get("default"); value != "" {
				if err := yaml.Unmarshal([]byte(value), field.Addr().Interface()); err != nil {
					return err
				}
			}
		}

		for field.Kind() == reflect.Ptr {
			field = field.Elem()
		}
		if field.Kind() == reflect.Struct {
			if err := processDefaults(field.Addr().Interface()); err != nil {
				return err
			}
		}
	}

	return nil
}

// processTags overrides fields from the environment. The variable name is
// the upper-cased field path joined with underscores under the prefix
// (e.g. ICS_SRV_CLIENT_GOOGLECLIENTID), unless an `env:` tag names it
// explicitly. Fields tagged `required:"true"` must end up non-blank.
func processTags(cfg interface{}, prefixes ...string) error {
	cfgValue := reflect.Indirect(reflect.ValueOf(cfg))
	if cfgValue.Kind() != reflect.Struct {
		return errors.New("invalid config, should be struct")
	}

	cfgType := cfgValue.Type()
	for i := 0; i < cfgType.NumField(); i++ {
		var (
			fieldStruct = cfgType.Field(i)
			field       = cfgValue.Field(i)
			envName     = fieldStruct.Tag.Get("env")
		)

		if !field.CanAddr() || !field.CanInterface() {
			continue
		}

		if envName == "" {
			envName = strings.ToUpper(strings.Join(append(prefixes, fieldStruct.Name), "_"))
		}

		if value := os.Getenv(envName); value != "" {
			switch reflect.Indirect(field).Kind() {
			case reflect.Bool:
				switch strings.ToLower(value) {
				case "", "0", "f", "false":
					field.Set(reflect.ValueOf(false))
				default:
					field.Set(reflect.ValueOf(true))
				}
			case reflect.String:
				field.Set(reflect.ValueOf(value))
			default:
				if err := yaml.Unmarshal([]byte(value), field.Addr().Interface()); err != nil {
					return err
				}
			}
		}

		if isBlank := reflect.DeepEqual(field.Interface(), reflect.Zero(field.Type()).Interface()); isBlank && fieldStruct.Tag.Get("required") == "true" {
			return errors.New(fieldStruct.Name + " is required, but blank")
		}

		for field.Kind() == reflect.Ptr {
			field = field.Elem()
		}
		if field.Kind() == reflect.Struct {
			if err := processTags(field.Addr().Interface(), append(prefixes, fieldStruct.Name)...); err != nil {
				return err
			}
		}
	}

	return nil
}
