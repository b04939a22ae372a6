// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"reflect"
	"sort"
	"strings"
)

// hotReloadable lists the yaml paths a running bot applies without restart.
var hotReloadable = map[string]bool{
	"access.allowedUsers": true,
	"access.allowedRoles": true,
	"access.commandRate":  true,
	"access.commandBurst": true,
	"log.level":           true,
}

// ChangeSummary describes the result of comparing two AppConfigs.
type ChangeSummary struct {
	// ChangedFields holds yaml paths, sorted.
	ChangedFields   []string
	RestartRequired bool
}

// Diff compares two configurations field by field.
func Diff(old, next AppConfig) ChangeSummary {
	var s ChangeSummary
	s.compareStruct("", reflect.ValueOf(old), reflect.ValueOf(next))
	sort.Strings(s.ChangedFields)
	return s
}

func (s *ChangeSummary) compareStruct(prefix string, oldVal, nextVal reflect.Value) {
	t := oldVal.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := yamlName(f)
		if !f.IsExported() || name == "-" {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		ov, nv := oldVal.Field(i), nextVal.Field(i)
		if ov.Kind() == reflect.Struct {
			s.compareStruct(path, ov, nv)
			continue
		}
		if !reflect.DeepEqual(ov.Interface(), nv.Interface()) {
			s.ChangedFields = append(s.ChangedFields, path)
			if !hotReloadable[path] {
				s.RestartRequired = true
			}
		}
	}
}

func yamlName(f reflect.StructField) string {
	tag := f.Tag.Get("yaml")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
