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

// Package app implements the namectl commands.
package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"dirpx.dev/mrx"
	"dirpx.dev/mrx/config"
)

// Options are the settings shared by all commands.
type Options struct {
	fs       vfs.FileSystem
	file     string
	logLevel string
}

// New creates the namectl root command. The optional filesystem replaces
// the operating system filesystem for reading input files.
func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{fs: osfs.OsFs}
	if len(fss) > 0 && fss[0] != nil {
		opts.fs = fss[0]
	}

	maincmd := &cobra.Command{
		Use:   "namectl <options> <cmd> <args>",
		Short: "inspect naming registrations and persisted names",
		Long: `
This command checks registration files of the naming service, lists the
schemes they register and decodes persisted name documents.
`,
		SilenceUsage:      true,
		TraverseChildren:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return opts.setupLogging() },
	}

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "registration file (default: built-in registration)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level for the naming service (error, warn, info, debug, trace)")

	maincmd.AddCommand(NewValidate(opts))
	maincmd.AddCommand(NewSchemes(opts))
	maincmd.AddCommand(NewDecode(opts))
	return maincmd
}

func (o *Options) setupLogging() error {
	if o.logLevel == "" {
		return nil
	}
	l, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	logging.DefaultContext().AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("mrx")))
	return nil
}

// registration loads the selected registration file.
func (o *Options) registration() (*config.File, error) {
	if o.file == "" {
		return mrx.DefaultFile(), nil
	}
	return config.LoadFile(o.fs, o.file)
}

// service builds a naming service from the selected registration.
func (o *Options) service() (*mrx.Service, *config.File, error) {
	f, err := o.registration()
	if err != nil {
		return nil, nil, err
	}
	s, err := mrx.New(mrx.WithFile(f))
	if err != nil {
		return nil, nil, err
	}
	return s, f, nil
}
