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
	"context"
	"fmt"
	"time"

	"github.com/retr0h/bazaar/internal/session"
)

// Draft is an entry opened before the wrapped call runs. Only Close fills in
// the outcome.
type Draft struct {
	entry  Entry
	shape  Shape
	target any
}

// Entry returns a copy of the pre-call skeleton.
func (d Draft) Entry() Entry {
	return d.entry.clone()
}

// Factory builds audit entries.
type Factory struct {
	now func() time.Time
}

// NewFactory creates a Factory. A nil clock means time.Now.
func NewFactory(
	now func() time.Time,
) *Factory {
	if now == nil {
		now = time.Now
	}

	return &Factory{now: now}
}

// Open stamps the entry with its creation time, actor and action, and renders
// a provisional subject from the payload. Credentials never reach the trail.
func (f *Factory) Open(
	ctx context.Context,
	action Action,
	actor string,
	shape Shape,
	arg any,
) Draft {
	entry := Entry{
		CreatedAt: f.now().UTC().Truncate(TimestampPrecision),
		Actor:     actor,
		Action:    action,
		RequestID: session.RequestID(ctx),
	}

	if shape == ShapeRecordSnapshot && arg != nil {
		entry.SubjectDescription = stringPtr(fmt.Sprint(arg))
	}

	return Draft{
		entry:  entry,
		shape:  shape,
		target: arg,
	}
}

// Close sets the outcome. Target-id entries get their subject written here,
// since the text depends on how the call ended.
func (f *Factory) Close(
	d Draft,
	outcome Outcome,
) Entry {
	entry := d.entry.clone()
	entry.Outcome = outcome

	if d.shape == ShapeTargetID {
		if outcome == OutcomeSuccess {
			entry.SubjectDescription = stringPtr(
				fmt.Sprintf("Product with ID - %v deleted success", d.target),
			)
		} else {
			entry.SubjectDescription = stringPtr(
				fmt.Sprintf("Product with ID - %v delete failed", d.target),
			)
		}
	}

	return entry
}

// clone returns a copy that shares no memory with e.
func (e Entry) clone() Entry {
	if e.SubjectDescription != nil {
		s := *e.SubjectDescription
		e.SubjectDescription = &s
	}

	return e
}
