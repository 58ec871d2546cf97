package debugui

import (
	"reflect"
	"sync"
)

// fieldInfo describes one exported field of a struct type.
type fieldInfo struct {
	name      string
	index     int
	isPointer bool
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

func exportedFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, fieldInfo{
				name:      field.Name,
				index:     i,
				isPointer: field.Type.Kind() == reflect.Ptr,
			})
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}
