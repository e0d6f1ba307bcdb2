package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"reflect"
	"time"
)

// CSV renders a slice of uniform structs as CSV: a header row of field
// names followed by one row per record. Field names honour the `csv` tag
// when present, falling back to the struct field name.
func CSV(records interface{}) ([]byte, error) {
	v := reflect.ValueOf(records)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("export: expected a slice, got %s", v.Kind())
	}

	elemType := v.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("export: expected a slice of structs, got slice of %s", elemType.Kind())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, elemType.NumField())
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		name := field.Name
		if tag, ok := field.Tag.Lookup("csv"); ok && tag != "" {
			name = tag
		}
		header = append(header, name)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		for elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}

		row := make([]string, 0, elemType.NumField())
		for j := 0; j < elemType.NumField(); j++ {
			row = append(row, formatValue(elem.Field(j)))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename builds a timestamped download name, e.g.
// patients_data_20260901_143015.csv.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("20060102_150405"))
}

func formatValue(v reflect.Value) string {
	if t, ok := v.Interface().(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v.Interface())
}
