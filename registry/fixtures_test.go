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

package registry_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/scheme"
)

// Model types.
type Animal interface{ Sound() string }

type Dog struct{ Name string }

func (d Dog) Sound() string { return "woof" }

type Cat struct{ Name string }

func (c Cat) Sound() string { return "meow" }

type Puppy struct {
	Dog
	Age int
}

type tag struct{ Name string }

// Holder embeds an unexported type; code outside the package cannot reach it.
type Holder struct {
	tag
}

// Loop embeds a pointer to itself, so its hierarchy is cyclic.
type Loop struct {
	*Loop
}

// Name types.
type dogName struct {
	apis.NameMeta
	Name string `json:"name"`
}

type animalName struct {
	apis.NameMeta
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type rowName struct {
	apis.NameMeta
	Row int `json:"row"`
}

type nodeName struct {
	apis.NameMeta
	Path string `json:"path"`
}

// Value contexts: a table of rows and a tree of paths.
type TableContext struct{ Rows []string }

type TreeContext struct{ Nodes map[string]string }

func dogs(shape string) apis.Scheme {
	return scheme.Global(shape,
		func(_ context.Context, d Dog) (*dogName, error) { return &dogName{Name: d.Name}, nil },
		func(_ context.Context, n *dogName) (Dog, error) { return Dog{Name: n.Name}, nil },
	)
}

func animals() apis.Scheme {
	return scheme.Global("test.animal",
		func(_ context.Context, a Animal) (*animalName, error) {
			switch v := a.(type) {
			case Dog:
				return &animalName{Kind: "dog", Name: v.Name}, nil
			case Cat:
				return &animalName{Kind: "cat", Name: v.Name}, nil
			}
			return nil, scheme.ErrSkip
		},
		func(_ context.Context, n *animalName) (Animal, error) {
			switch n.Kind {
			case "dog":
				return Dog{Name: n.Name}, nil
			case "cat":
				return Cat{Name: n.Name}, nil
			}
			return nil, fmt.Errorf("unknown kind %q", n.Kind)
		},
	)
}

func failing() apis.Scheme {
	return scheme.Global("test.failing",
		func(_ context.Context, d Dog) (*dogName, error) { return nil, errors.New("cannot name dogs today") },
		func(_ context.Context, n *dogName) (Dog, error) { return Dog{}, errors.New("unsupported") },
	)
}

func crashing() apis.Scheme {
	return scheme.Global("test.crashing",
		func(_ context.Context, d Dog) (*dogName, error) { panic("scheme bug") },
		func(_ context.Context, n *dogName) (Dog, error) { panic("scheme bug") },
	)
}

func tags() apis.Scheme {
	return scheme.Global("test.tag",
		func(_ context.Context, t tag) (*dogName, error) { return &dogName{Name: t.Name}, nil },
		func(_ context.Context, n *dogName) (tag, error) { return tag{Name: n.Name}, nil },
	)
}

// labels names strings within any fmt.Stringer context.
func labels() apis.Scheme {
	return scheme.New[fmt.Stringer, string, *nodeName]("test.label",
		func(_ context.Context, s fmt.Stringer, m string) (*nodeName, error) {
			return &nodeName{Path: s.String() + "/" + m}, nil
		},
		func(_ context.Context, s fmt.Stringer, n *nodeName) (string, error) {
			return strings.TrimPrefix(n.Path, s.String()+"/"), nil
		},
	)
}

func rows() apis.Scheme {
	return scheme.New[*TableContext, string, *rowName]("test.row",
		func(_ context.Context, tc *TableContext, m string) (*rowName, error) {
			i := slices.Index(tc.Rows, m)
			if i < 0 {
				return nil, scheme.ErrSkip
			}
			return &rowName{Row: i}, nil
		},
		func(_ context.Context, tc *TableContext, n *rowName) (string, error) {
			if n.Row < 0 || n.Row >= len(tc.Rows) {
				return "", fmt.Errorf("row %d out of range", n.Row)
			}
			return tc.Rows[n.Row], nil
		},
	)
}

func nodes() apis.Scheme {
	return scheme.New[*TreeContext, string, *nodeName]("test.node",
		func(_ context.Context, tc *TreeContext, m string) (*nodeName, error) {
			for p, v := range tc.Nodes {
				if v == m {
					return &nodeName{Path: p}, nil
				}
			}
			return nil, scheme.ErrSkip
		},
		func(_ context.Context, tc *TreeContext, n *nodeName) (string, error) {
			return tc.Nodes[n.Path], nil
		},
	)
}

func decl(s apis.Scheme, level string) apis.Declaration {
	return apis.Declaration{Scheme: s, Priority: level}
}

func shapes(list []apis.Scheme) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Shape()
	}
	return out
}
