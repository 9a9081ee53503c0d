// Package resource implements the generic controller that mirrors one
// backend collection and performs create, update and delete against it.
package resource

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Payload is the JSON body sent on create and update.
type Payload map[string]any

// Secret names a draft field that is optional on update and never sent blank.
type Secret struct {
	// Field is the Go struct field name on the draft type.
	Field string
	// Key is the payload key.
	Key string
}

// Definition configures a Controller for one entity type.
type Definition[E any, D any] struct {
	// Name is the stable, lower-case resource name (e.g. "categories").
	Name string
	// Noun and Plural are used in notices.
	Noun   string
	Plural string
	// Path is the collection path below the gateway prefix (e.g. "/categorias").
	Path string
	// Dependents, when set, turns rejected deletes into a ConflictError.
	Dependents string
	Secrets    []Secret

	ID    func(E) string
	Label func(E) string
	Blank func() D
	// Edit returns a deep copy of the entity's editable fields.
	Edit func(E) D
	// Encode coerces a validated draft into the wire payload.
	Encode func(D) (Payload, error)
}

func (d Definition[E, D]) check() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("resource: definition name required")
	case !strings.HasPrefix(d.Path, "/"):
		return fmt.Errorf("resource: %s: path must start with /", d.Name)
	case d.ID == nil || d.Blank == nil || d.Edit == nil || d.Encode == nil:
		return fmt.Errorf("resource: %s: ID, Blank, Edit and Encode are required", d.Name)
	}
	var zero D
	if t := reflect.TypeOf(zero); t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("resource: %s: draft must be a struct", d.Name)
	}
	return nil
}

func (d Definition[E, D]) itemPath(id string) string {
	return d.Path + "/" + url.PathEscape(id)
}

func (d Definition[E, D]) secretFields() []string {
	fields := make([]string, len(d.Secrets))
	for i, s := range d.Secrets {
		fields[i] = s.Field
	}
	return fields
}

func (d Definition[E, D]) label(e E) string {
	if d.Label != nil {
		if l := d.Label(e); l != "" {
			return l
		}
	}
	return d.ID(e)
}

// SuccessNotice returns the notice shown after a successful mutation.
func (d Definition[E, D]) SuccessNotice(op Op) string {
	noun := d.Noun
	if noun != "" {
		noun = strings.ToUpper(noun[:1]) + noun[1:]
	}
	switch op {
	case OpCreate:
		return noun + " created"
	case OpUpdate:
		return noun + " updated"
	case OpDelete:
		return noun + " deleted"
	default:
		return noun + " loaded"
	}
}
