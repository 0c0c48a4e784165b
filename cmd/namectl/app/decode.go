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

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
)

// Decode reads a persisted name document.
type Decode struct {
	cmd      *cobra.Command
	mainopts *Options
	output   string
	resolve  bool
}

// NewDecode creates the decode command.
func NewDecode(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file>|-",
		Short: "decode a persisted name document (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
	}
	c := &Decode{cmd: cmd, mainopts: opts}
	cmd.RunE = func(_ *cobra.Command, args []string) error { return c.Run(args[0]) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "yaml", "output format (yaml, json, canonical)")
	flags.BoolVarP(&c.resolve, "resolve", "r", false, "resolve the name without a value context and print the value")
	return cmd
}

// Run decodes the document and prints it in the selected format.
func (c *Decode) Run(path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.cmd.InOrStdin())
	} else {
		data, err = vfs.ReadFile(c.mainopts.fs, path)
	}
	if err != nil {
		return err
	}

	s, _, err := c.mainopts.service()
	if err != nil {
		return err
	}
	n, err := s.Codec().Decode(data)
	if err != nil {
		return err
	}

	var out []byte
	switch c.output {
	case "yaml":
		out, err = s.Codec().EncodeYAML(n)
	case "json":
		out, err = s.Codec().Encode(n)
	case "canonical":
		out, err = s.Codec().Canonical(n)
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}
	if err != nil {
		return err
	}
	w := c.cmd.OutOrStdout()
	fmt.Fprintln(w, string(out))

	if c.resolve {
		v, err := s.Resolve(context.Background(), nil, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "value: %#v\n", v)
	}
	return nil
}
