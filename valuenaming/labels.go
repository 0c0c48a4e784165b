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
	"context"
	"fmt"
	"reflect"

	"github.com/samber/lo"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/scheme"
)

const (
	// LabelShape is the shape identifier of LabeledValue.
	LabelShape = "value.labeled"
	// LabelImpl is the catalog name of the label scheme.
	LabelImpl = "valuenaming.labels"
)

// labelKey is the fingerprint key reported by label matching errors.
const labelKey = "label"

// LabeledValue references an option of the value context by its display
// label.
type LabeledValue struct {
	apis.NameMeta
	Label string `json:"label"`
}

// Labeler supplies the display labels of options. A value context
// implementing it labels its own options; otherwise options implementing
// fmt.Stringer are labeled by their String method.
type Labeler interface {
	Label(option any) (string, bool)
}

// LabelOf returns the display label of option within vctx.
func LabelOf(vctx, option any) (string, bool) {
	if l, ok := vctx.(Labeler); ok {
		return l.Label(option)
	}
	if s, ok := option.(fmt.Stringer); ok {
		return s.String(), true
	}
	return "", false
}

// NameByLabel names value among the options of vctx by its label. The
// label must select exactly one option, and that option must be value.
func NameByLabel(vctx OptionProvider, value any) (*LabeledValue, error) {
	if _, ok := vctx.(singleton); ok {
		return nil, ErrNestedOptions
	}
	label, ok := LabelOf(vctx, value)
	if !ok || label == "" {
		return nil, fmt.Errorf("%w: %T", ErrNoLabel, value)
	}
	match, err := ResolveLabel(vctx, label)
	if err != nil {
		return nil, err
	}
	if !reflect.DeepEqual(match, value) {
		// Another option is displayed with the same label.
		return nil, &NotFoundError{Provider: labelKey, Fingerprint: labelFingerprint(label), Candidates: options(vctx)}
	}
	return &LabeledValue{NameMeta: apis.NewNameMeta(LabelShape), Label: label}, nil
}

// ResolveLabel returns the unique option of vctx displayed as label.
func ResolveLabel(vctx OptionProvider, label string) (any, error) {
	candidates := options(vctx)
	matches := lo.Filter(candidates, func(c any, _ int) bool {
		l, ok := LabelOf(vctx, c)
		return ok && l == label
	})
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, &NotFoundError{Provider: labelKey, Fingerprint: labelFingerprint(label), Candidates: candidates}
	default:
		return nil, &AmbiguousError{Provider: labelKey, Fingerprint: labelFingerprint(label), Matches: matches, Candidates: candidates}
	}
}

// NewLabelScheme returns the model scheme that names values among the
// options of an OptionProvider value context by their display label.
func NewLabelScheme() apis.Scheme {
	return scheme.New[OptionProvider, any, *LabeledValue](LabelShape,
		func(_ context.Context, vctx OptionProvider, m any) (*LabeledValue, error) {
			return NameByLabel(vctx, m)
		},
		func(_ context.Context, vctx OptionProvider, n *LabeledValue) (any, error) {
			return ResolveLabel(vctx, n.Label)
		},
		scheme.Compatible(func(vctx OptionProvider, m any) bool {
			if _, ok := vctx.(singleton); ok {
				return false
			}
			_, ok := LabelOf(vctx, m)
			return ok
		}),
		scheme.Label(LabelImpl),
	)
}

func labelFingerprint(label string) []Field {
	return []Field{{Key: labelKey, Value: label}}
}

// options returns the options of vctx, if any.
func options(vctx OptionProvider) []any {
	if vctx == nil {
		return nil
	}
	return vctx.Options()
}
