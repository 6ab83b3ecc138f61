package config

import (
	"log/slog"
	"os"
	"reflect"
	"strconv"
)

// envConfig заполняет поля структуры s значениями переменных окружения из тега key.
// Пустые и отсутствующие переменные не меняют поле. Значение, которое не разбирается в тип поля, пропускается с предупреждением.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get(key)
		if name == "" {
			continue
		}
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}

		if err := setField(v.Field(i), value); err != nil {
			slog.Warn("Skip config value", "env", name, "err", err)
			continue
		}

		logValue := value
		if isSecret(field.Name) {
			logValue = mask(value)
		}
		slog.Info("Set config value",
			slog.String("key", t.Name()+"."+field.Name),
			slog.String("value", logValue),
			slog.String("source", "ENVIRONMENT"),
		)
	}
}

func setField(f reflect.Value, value string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		f.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		f.SetBool(b)
	}
	return nil
}
