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

package audit_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/audit"
)

type OperationPublicTestSuite struct {
	suite.Suite
}

func (s *OperationPublicTestSuite) TestNewOperation() {
	tests := []struct {
		name         string
		opName       string
		validateFunc func(audit.Operation, error)
	}{
		{
			name:   "classifies login",
			opName: "loginUser",
			validateFunc: func(op audit.Operation, err error) {
				s.NoError(err)
				s.Equal(audit.KindLogin, op.Kind)
				s.Equal(audit.ActionLogin, op.Action())
				s.Equal(audit.ShapeAuthPayload, op.Shape())
			},
		},
		{
			name:   "classifies logout",
			opName: "logoutUser",
			validateFunc: func(op audit.Operation, err error) {
				s.NoError(err)
				s.Equal(audit.KindLogout, op.Kind)
				s.Equal(audit.ActionLogout, op.Action())
				s.Equal(audit.ShapeAuthPayload, op.Shape())
			},
		},
		{
			name:   "classifies create",
			opName: "createProduct",
			validateFunc: func(op audit.Operation, err error) {
				s.NoError(err)
				s.Equal(audit.ActionAddProduct, op.Action())
				s.Equal(audit.ShapeRecordSnapshot, op.Shape())
			},
		},
		{
			name:   "classifies update",
			opName: "updateProduct",
			validateFunc: func(op audit.Operation, err error) {
				s.NoError(err)
				s.Equal(audit.ActionUpdateProduct, op.Action())
				s.Equal(audit.ShapeRecordSnapshot, op.Shape())
			},
		},
		{
			name:   "classifies delete",
			opName: "deleteProduct",
			validateFunc: func(op audit.Operation, err error) {
				s.NoError(err)
				s.Equal(audit.ActionDeleteProduct, op.Action())
				s.Equal(audit.ShapeTargetID, op.Shape())
			},
		},
		{
			name:   "ignores case",
			opName: "DeleteProduct",
			validateFunc: func(op audit.Operation, err error) {
				s.NoError(err)
				s.Equal(audit.KindDelete, op.Kind)
				s.Equal("DeleteProduct", op.Name)
			},
		},
		{
			name:   "rejects an unknown name",
			opName: "listProducts",
			validateFunc: func(_ audit.Operation, err error) {
				s.ErrorIs(err, audit.ErrUnknownOperation)
				s.Contains(err.Error(), "listProducts")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			op, err := audit.NewOperation(tt.opName)
			tt.validateFunc(op, err)
		})
	}
}

func (s *OperationPublicTestSuite) TestMustOperation() {
	s.NotPanics(func() { audit.MustOperation("createProduct") })
	s.Panics(func() { audit.MustOperation("fetchProduct") })
}

func (s *OperationPublicTestSuite) TestShapeOf() {
	tests := []struct {
		name string
		arg  any
		want audit.Shape
	}{
		{
			name: "credentials are an auth payload",
			arg:  loginPayload{email: "a@example.com"},
			want: audit.ShapeAuthPayload,
		},
		{
			name: "int64 is a target id",
			arg:  int64(123),
			want: audit.ShapeTargetID,
		},
		{
			name: "uint is a target id",
			arg:  uint(7),
			want: audit.ShapeTargetID,
		},
		{
			name: "struct is a record snapshot",
			arg:  record{label: "test-record"},
			want: audit.ShapeRecordSnapshot,
		},
		{
			name: "string is a record snapshot",
			arg:  "123",
			want: audit.ShapeRecordSnapshot,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, audit.ShapeOf(tt.arg))
			s.NotEqual("unknown", tt.want.String())
		})
	}
}

func TestOperationPublicTestSuite(t *testing.T) {
	suite.Run(t, new(OperationPublicTestSuite))
}
