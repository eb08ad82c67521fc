// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is the declared kind of an auditable operation.
type Kind int

// Kind values.
const (
	KindLogin Kind = iota + 1
	KindLogout
	KindCreate
	KindUpdate
	KindDelete
)

// Shape is the structural category of an operation's first argument.
type Shape int

// Shape values.
const (
	// ShapeAuthPayload is an identity-bearing login payload.
	ShapeAuthPayload Shape = iota + 1
	// ShapeTargetID is a bare integral identifier of the affected record.
	ShapeTargetID
	// ShapeRecordSnapshot is an opaque record rendered with its string form.
	ShapeRecordSnapshot
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeAuthPayload:
		return "auth_payload"
	case ShapeTargetID:
		return "target_id"
	case ShapeRecordSnapshot:
		return "record_snapshot"
	default:
		return "unknown"
	}
}

// Credentials is implemented by login payloads that carry the caller's email.
type Credentials interface {
	GetEmail() string
}

// Operation describes an auditable operation. Its kind is resolved once, when
// the operation is registered, never per call.
type Operation struct {
	// Name is the operation name used for logging.
	Name string
	// Kind is the declared operation kind.
	Kind Kind
}

// operationPrefixes maps lower-cased name prefixes to kinds. Order matters
// only for readability; no prefix is a prefix of another.
var operationPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"login", KindLogin},
	{"logout", KindLogout},
	{"create", KindCreate},
	{"update", KindUpdate},
	{"delete", KindDelete},
}

// NewOperation classifies an operation by naming convention, e.g.
// "createProduct", "deleteProduct" or "loginUser".
func NewOperation(
	name string,
) (Operation, error) {
	lower := strings.ToLower(name)
	for _, p := range operationPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return Operation{Name: name, Kind: p.kind}, nil
		}
	}

	return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// MustOperation is like NewOperation but panics on an unknown name. It is
// meant for package-level registration.
func MustOperation(
	name string,
) Operation {
	op, err := NewOperation(name)
	if err != nil {
		panic(err)
	}

	return op
}

// Action returns the audit action recorded for the operation.
func (o Operation) Action() Action {
	switch o.Kind {
	case KindLogin:
		return ActionLogin
	case KindLogout:
		return ActionLogout
	case KindCreate:
		return ActionAddProduct
	case KindUpdate:
		return ActionUpdateProduct
	case KindDelete:
		return ActionDeleteProduct
	default:
		return ""
	}
}

// Shape returns the payload shape paired with the operation's kind.
func (o Operation) Shape() Shape {
	switch o.Kind {
	case KindLogin, KindLogout:
		return ShapeAuthPayload
	case KindDelete:
		return ShapeTargetID
	default:
		return ShapeRecordSnapshot
	}
}

// requiresActor reports whether the operation may only run for an
// authenticated caller. Login is the one intrinsically unauthenticated kind.
func (o Operation) requiresActor() bool {
	return o.Kind != KindLogin
}

// ShapeOf inspects an argument structurally: an email-bearing payload is an
// auth payload, an integral value is a target id, anything else is a record.
func ShapeOf(
	arg any,
) Shape {
	if _, ok := arg.(Credentials); ok {
		return ShapeAuthPayload
	}

	switch reflect.ValueOf(arg).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ShapeTargetID
	default:
		return ShapeRecordSnapshot
	}
}
