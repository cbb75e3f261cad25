package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/gdamore/tcell/v2"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// ReflectionCache remembers the exported fields of the user data types
// shown in the inspector.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      field.Type,
				Index:     i,
				IsPointer: field.Type.Kind() == reflect.Pointer,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

var colorType = reflect.TypeFor[tcell.Color]()

// formatValue is the one-line form of a leaf value.
func formatValue(val reflect.Value) string {
	if !val.IsValid() {
		return "<invalid>"
	}
	if val.Type() == colorType {
		return colorName(val.Interface().(tcell.Color))
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return "nil"
		}
	case reflect.Slice:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	case reflect.Array:
		return fmt.Sprintf("[%d]", val.Len())
	}
	if val.CanInterface() {
		return fmt.Sprintf("%v", val.Interface())
	}
	return val.Type().String()
}

// renderValue draws val read-only, expanding structs and arrays into tree
// nodes.
func renderValue(name string, val reflect.Value) {
	for val.IsValid() && (val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface) && !val.IsNil() {
		val = val.Elem()
	}
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch {
	case val.Kind() == reflect.Struct && val.Type() != colorType:
		if imgui.TreeNodeStr(name) {
			for _, f := range globalReflectionCache.GetFields(val.Type()) {
				renderValue(f.Name, val.Field(f.Index))
			}
			imgui.TreePop()
		}
	case val.Kind() == reflect.Array:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := range val.Len() {
				renderValue(fmt.Sprintf("%d", i), val.Index(i))
			}
			imgui.TreePop()
		}
	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, formatValue(val)))
	}
}

func colorName(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "default"
	}
	if name := c.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
