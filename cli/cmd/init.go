package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/equex/log"
	"github.com/ardnew/equex/profile"
)

// ConfigExt is the extension of the configuration file written by [Init].
const ConfigExt = ".yaml"

// defaultConfigIndent is the number of spaces used for indentation in the
// generated configuration file.
const defaultConfigIndent = 2

// Init generates a configuration file with the current global flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	base, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	confPath := base + ConfigExt

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var items yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || ignoreFlag(flag.Name) {
			continue
		}

		if v, ok := configValue(ktx.FlagValue(flag)); ok {
			items = append(items, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	data, err := yaml.MarshalWithOptions(items, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("keys", len(items)),
	)

	return nil
}

func ignoreFlag(name string) bool {
	return slices.ContainsFunc([]string{"help", "version", profile.Tag}, func(s string) bool {
		return strings.HasPrefix(name, s)
	})
}

// configValue converts a parsed flag value to its configuration form.
// Empty strings and lists are omitted.
func configValue(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false

	case string:
		return v, v != ""

	case []string:
		return v, len(v) > 0

	case bool, int, int64, uint64, float64:
		return v, true

	case fmt.Stringer:
		return v.String(), true
	}

	// Named string types such as the log level.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String(), rv.Len() > 0
	}

	return fmt.Sprint(v), true
}
