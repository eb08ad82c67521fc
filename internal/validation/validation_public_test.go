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

package validation_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/config"
	"github.com/retr0h/bazaar/internal/user"
	"github.com/retr0h/bazaar/internal/validation"
)

type ValidationPublicTestSuite struct {
	suite.Suite
}

func (s *ValidationPublicTestSuite) SetupSuite() {
	validation.RegisterCatalogValidators(fixedCatalog{})
}

func (s *ValidationPublicTestSuite) TestStruct() {
	type productInput struct {
		Name       string `validate:"required,max=200"`
		CategoryID int64  `validate:"required,gt=0,known_category"`
		BrandID    int64  `validate:"required,gt=0,known_brand"`
	}

	tests := []struct {
		name         string
		input        any
		validateFunc func(errMsg string, ok bool)
	}{
		{
			name: "when login payload is valid",
			input: user.LoginRequest{
				Email:    "admin@bazaar.test",
				Password: "secret",
			},
			validateFunc: func(errMsg string, ok bool) {
				s.True(ok)
				s.Empty(errMsg)
			},
		},
		{
			name: "when login email is malformed",
			input: user.LoginRequest{
				Email:    "admin",
				Password: "secret",
			},
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "LoginRequest.Email")
				s.Contains(errMsg, "'email' tag")
			},
		},
		{
			name:  "when every login field is missing joins the errors",
			input: user.LoginRequest{},
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "LoginRequest.Email")
				s.Contains(errMsg, "; ")
				s.Contains(errMsg, "LoginRequest.Password")
			},
		},
		{
			name:  "when audit backend is unknown",
			input: config.Audit{Enabled: true, Backend: "mongo"},
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "Audit.Backend")
				s.Contains(errMsg, "oneof")
			},
		},
		{
			name:  "when catalog item lacks a name",
			input: config.CatalogItem{ID: 3},
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "CatalogItem.Name")
			},
		},
		{
			name:  "when category reference is unknown appends the hint",
			input: productInput{Name: "Kettle", CategoryID: 99, BrandID: 10},
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "known_category")
				s.Contains(errMsg, "category 99 not found")
			},
		},
		{
			name:  "when brand reference is unknown appends the hint",
			input: productInput{Name: "Kettle", CategoryID: 1, BrandID: 7},
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "brand 7 not found")
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.validateFunc(validation.Struct(tc.input))
		})
	}
}

func (s *ValidationPublicTestSuite) TestVar() {
	tests := []struct {
		name         string
		field        any
		tag          string
		validateFunc func(errMsg string, ok bool)
	}{
		{
			name:  "when userEmail filter is valid",
			field: "buyer@bazaar.test",
			tag:   "required,email",
			validateFunc: func(errMsg string, ok bool) {
				s.True(ok)
				s.Empty(errMsg)
			},
		},
		{
			name:  "when userEmail filter is empty",
			field: "",
			tag:   "required,email",
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "required")
			},
		},
		{
			name:  "when audit id is not positive",
			field: int64(0),
			tag:   "gt=0",
			validateFunc: func(errMsg string, ok bool) {
				s.False(ok)
				s.Contains(errMsg, "gt")
			},
		},
		{
			name:  "when category reference is known",
			field: int64(1),
			tag:   "known_category",
			validateFunc: func(_ string, ok bool) {
				s.True(ok)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.validateFunc(validation.Var(tc.field, tc.tag))
		})
	}
}

func (s *ValidationPublicTestSuite) TestInstanceIsShared() {
	s.Same(validation.Instance(), validation.Instance())
}

func TestValidationPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ValidationPublicTestSuite))
}
