/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package valuenaming

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
)

var (
	// ErrDuplicateProvider is returned when two value schemes share a name.
	ErrDuplicateProvider = errors.New("mrx(valuenaming): duplicate value scheme")
	// ErrUnknownProvider is returned for named values of an unknown provider.
	ErrUnknownProvider = errors.New("mrx(valuenaming): unknown value scheme")
	// ErrNoValueScheme is returned when no value scheme handles a model.
	ErrNoValueScheme = errors.New("mrx(valuenaming): no value scheme for model")
	// ErrNoRegistry is returned when no registry is carried by the context.
	ErrNoRegistry = errors.New("mrx(valuenaming): no registry in context")
	// ErrNestedOptions is returned when a part of a named value would
	// itself be named among options.
	ErrNestedOptions = errors.New("mrx(valuenaming): closed-option naming of a value part")
	// ErrNoLabel is returned when a value has no display label.
	ErrNoLabel = errors.New("mrx(valuenaming): value has no label")
	// ErrNoMatch is matched by NotFoundError.
	ErrNoMatch = errors.New("mrx(valuenaming): no option matches")
	// ErrAmbiguous is matched by AmbiguousError.
	ErrAmbiguous = errors.New("mrx(valuenaming): several options match")
)

// NotFoundError reports a fingerprint no option matches.
type NotFoundError struct {
	Provider    string
	Fingerprint []Field
	Candidates  []any
}

// Error implements error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mrx(valuenaming): no option matches %s %s\n%s",
		e.Provider, formatFingerprint(e.Fingerprint), render("candidates", e.Candidates))
}

// Unwrap returns ErrNoMatch.
func (e *NotFoundError) Unwrap() error { return ErrNoMatch }

// AmbiguousError reports a fingerprint several options match.
type AmbiguousError struct {
	Provider    string
	Fingerprint []Field
	Matches     []any
	Candidates  []any
}

// Error implements error.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("mrx(valuenaming): %d options match %s %s\n%s\n%s",
		len(e.Matches), e.Provider, formatFingerprint(e.Fingerprint),
		render("matches", e.Matches), render("candidates", e.Candidates))
}

// Unwrap returns ErrAmbiguous.
func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }

// render lists values under a title.
func render(title string, values []any) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)
	l.AppendItem(fmt.Sprintf("%s (%d)", title, len(values)))
	l.Indent()
	for _, v := range values {
		l.AppendItem(fmt.Sprintf("%v", v))
	}
	return strings.TrimRight(l.Render(), "\n")
}
