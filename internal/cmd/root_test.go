package cmd

import (
	"strconv"
	"testing"

	"github.com/Kirizaki/packtest/fixture"
)

func TestRootCmdHasAllSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{"generate": false, "verify": false, "count": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestVerifyCmdRequiresTwoArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "no args", args: nil, wantErr: true},
		{name: "one arg", args: []string{"orig"}, wantErr: true},
		{name: "two args", args: []string{"orig", "unpacked"}, wantErr: false},
		{name: "three args", args: []string{"a", "b", "c"}, wantErr: true},
	}

	cmd := NewVerifyCmd()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cmd.Args(cmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("Args(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateCmdFlagDefaults(t *testing.T) {
	cmd := NewGenerateCmd()
	def := fixture.DefaultConfig()

	tests := []struct {
		flag string
		want string
	}{
		{"output", def.BaseDir},
		{"seed", strconv.FormatInt(def.Seed, 10)},
		{"count", strconv.Itoa(def.ManyFiles)},
		{"large-size", strconv.FormatInt(def.LargeFileSize, 10)},
		{"sparse", "true"},
		{"symlinks", "true"},
		{"permissions", "true"},
		{"manifest", "true"},
		{"long-paths", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag %q not registered", tt.flag)
			}
			if f.DefValue != tt.want {
				t.Errorf("flag %q default = %q, want %q", tt.flag, f.DefValue, tt.want)
			}
		})
	}
}
