package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/kisielk/sqlstruct"

	"github.com/coregx/sqldialect/internal/typename"
)

// TagName is the struct tag read by FromStruct.
const TagName = "db"

// tableNamer lets a model choose its table name.
type tableNamer interface {
	TableName() string
}

// fieldTag holds a parsed db tag.
//
// Supported formats:
//   - "column"                   -> column name only
//   - "column,pk"                -> primary key member (composite keys keep field order)
//   - "column,size=100"          -> Length
//   - "column,precision=10,scale=2"
//   - "column,null"              -> nullable even for non-pointer types
//   - "column,type=ansistring"   -> explicit type code
//   - "column,index" / "column,index=ix_name" -> index membership
//   - "-"                        -> skip field
type fieldTag struct {
	column    string
	pk        bool
	null      bool
	length    int
	precision int
	scale     int
	code      typename.Code
	index     string
	indexed   bool
}

func parseDBTag(tag string) (fieldTag, error) {
	parts := strings.Split(tag, ",")
	ft := fieldTag{column: strings.TrimSpace(parts[0])}

	for _, part := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(part), "=")
		var err error
		switch key {
		case "pk":
			ft.pk = true
		case "null":
			ft.null = true
		case "size":
			ft.length, err = strconv.Atoi(value)
		case "precision":
			ft.precision, err = strconv.Atoi(value)
		case "scale":
			ft.scale, err = strconv.Atoi(value)
		case "type":
			ft.code, err = typename.ParseCode(value)
		case "index":
			ft.indexed = true
			ft.index = value
		case "":
		default:
			return ft, fmt.Errorf("unknown db tag option %q", key)
		}
		if err != nil {
			return ft, fmt.Errorf("db tag option %q: %w", key, err)
		}
	}
	return ft, nil
}

var (
	timeType      = reflect.TypeOf(time.Time{})
	byteSliceType = reflect.TypeOf([]byte(nil))
)

// nullTypes maps database/sql null wrappers to their type codes.
var nullTypes = map[reflect.Type]typename.Code{
	reflect.TypeOf(sql.NullString{}):  typename.String,
	reflect.TypeOf(sql.NullBool{}):    typename.Boolean,
	reflect.TypeOf(sql.NullByte{}):    typename.Byte,
	reflect.TypeOf(sql.NullInt16{}):   typename.Int16,
	reflect.TypeOf(sql.NullInt32{}):   typename.Int32,
	reflect.TypeOf(sql.NullInt64{}):   typename.Int64,
	reflect.TypeOf(sql.NullFloat64{}): typename.Double,
	reflect.TypeOf(sql.NullTime{}):    typename.DateTime,
}

// uint64Digits is the decimal precision needed for math.MaxUint64.
const uint64Digits = 20

// codeOf infers the type code of a Go type and whether it is nullable.
func codeOf(t reflect.Type) (typename.Code, bool) {
	if code, ok := nullTypes[t]; ok {
		return code, true
	}
	if t.Kind() == reflect.Ptr {
		code, _ := codeOf(t.Elem())
		return code, true
	}
	if t == timeType {
		return typename.DateTime, false
	}
	if t == byteSliceType {
		return typename.Binary, true
	}

	switch t.Kind() {
	case reflect.String:
		return typename.String, false
	case reflect.Bool:
		return typename.Boolean, false
	case reflect.Uint8:
		return typename.Byte, false
	case reflect.Int8, reflect.Int16:
		return typename.Int16, false
	case reflect.Int32, reflect.Uint16:
		return typename.Int32, false
	case reflect.Int, reflect.Int64, reflect.Uint32:
		return typename.Int64, false
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		// no signed integer type holds the full range
		return typename.Decimal, false
	case reflect.Float32:
		return typename.Single, false
	case reflect.Float64:
		return typename.Double, false
	case reflect.Array:
		// uuid.UUID and friends
		if t.Len() == 16 && t.Elem().Kind() == reflect.Uint8 {
			return typename.Guid, false
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return typename.Binary, true
		}
	}
	return typename.Unknown, false
}

// FromStruct derives a table model from the exported fields of a struct.
//
// The table name is taken from name, then from a TableName() method, then from
// the snake-cased type name. Untagged fields are snake-cased. The primary key
// is the set of fields tagged pk, in declaration order; without any, a field
// named ID or Id is used.
//
//nolint:cyclop,gocognit,funlen // Field walk with tag options and PK fallback.
func FromStruct(name string, model interface{}) (*Table, error) {
	if model == nil {
		return nil, errors.New("FromStruct: nil model")
	}
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.New("FromStruct: expected struct, got " + t.Kind().String())
	}

	if name == "" {
		if n, ok := model.(tableNamer); ok {
			name = n.TableName()
		} else {
			name = sqlstruct.ToSnakeCase(t.Name())
		}
	}
	table := &Table{Name: name}

	idColumn := ""
	indexOrder := []string{}
	indexColumns := map[string][]string{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		var ft fieldTag
		if tag, ok := field.Tag.Lookup(TagName); ok {
			var err error
			ft, err = parseDBTag(tag)
			if err != nil {
				return nil, fmt.Errorf("FromStruct: field %s: %w", field.Name, err)
			}
		}
		if ft.column == "-" {
			continue
		}
		if ft.column == "" {
			ft.column = sqlstruct.ToSnakeCase(field.Name)
		}

		code, nullable := codeOf(field.Type)
		if ft.code.Valid() {
			code = ft.code
		} else if code == typename.Decimal && ft.precision == 0 {
			ft.precision = uint64Digits
		}
		if !code.Valid() {
			return nil, fmt.Errorf("FromStruct: field %s: cannot infer column type for %s", field.Name, field.Type)
		}

		table.Columns = append(table.Columns, Column{
			Name:      ft.column,
			Type:      code,
			Length:    ft.length,
			Precision: ft.precision,
			Scale:     ft.scale,
			Nullable:  (nullable || ft.null) && !ft.pk,
		})

		if ft.pk {
			table.PrimaryKey = append(table.PrimaryKey, ft.column)
		}
		if idColumn == "" && (field.Name == "ID" || field.Name == "Id") {
			idColumn = ft.column
		}
		if ft.indexed {
			ix := ft.index
			if ix == "" {
				ix = "ix_" + name + "_" + ft.column
			}
			if _, seen := indexColumns[ix]; !seen {
				indexOrder = append(indexOrder, ix)
			}
			indexColumns[ix] = append(indexColumns[ix], ft.column)
		}
	}

	if len(table.Columns) == 0 {
		return nil, errors.New("FromStruct: no mappable fields in " + t.String())
	}

	if len(table.PrimaryKey) == 0 && idColumn != "" {
		table.PrimaryKey = []string{idColumn}
		for i := range table.Columns {
			if table.Columns[i].Name == idColumn {
				table.Columns[i].Nullable = false
			}
		}
	}

	for _, ix := range indexOrder {
		table.Indexes = append(table.Indexes, Index{Name: ix, Columns: indexColumns[ix]})
	}
	return table, nil
}
