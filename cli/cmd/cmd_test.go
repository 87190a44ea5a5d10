package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/backend/js"
	"github.com/ardnew/ilc/il"
	"github.com/ardnew/ilc/program"
)

const testProgram = `target: {version: es6}
body:
  - let: {name: t, type: Int, value: "80"}
  - val: console.log(t)
`

const testPrelude = "console.log: \"(Int): Null\"\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCompile_Run(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.yaml", testProgram)
	lib := filepath.Join(dir, "lib")

	if err := os.Mkdir(lib, 0o700); err != nil {
		t.Fatal(err)
	}

	writeFile(t, lib, "console.yaml", testPrelude)

	tests := []struct {
		name string
		opts Options
		want string
		err  error
	}{
		{
			name: "prelude by name",
			opts: Options{Prelude: []string{"console"}, SearchPath: []string{lib}},
			want: "let t=80;console.log(t);\n",
		},
		{
			name: "prelude by path listed twice",
			opts: Options{Prelude: []string{
				filepath.Join(lib, "console.yaml"),
				filepath.Join(lib, "console"),
			}},
			want: "let t=80;console.log(t);\n",
		},
		{
			name: "target override",
			opts: Options{Target: "es5", Prelude: []string{"console"}, SearchPath: []string{lib}},
			want: "var t=80;console.log(t);\n",
		},
		{
			name: "missing prelude",
			opts: Options{Prelude: []string{"nope"}, SearchPath: []string{lib}},
			err:  ErrPrelude,
		},
		{
			name: "undeclared name",
			err:  backend.ErrNameNotFound,
		},
		{
			name: "bad target",
			opts: Options{Target: "es3", Prelude: []string{"console"}, SearchPath: []string{lib}},
			err:  js.ErrInvalidVersion,
		},
		{
			name: "depth limit",
			opts: Options{MaxDepth: -1, Prelude: []string{"console"}, SearchPath: []string{lib}},
			want: "let t=80;console.log(t);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			ctx := WithOutput(WithOptions(t.Context(), tt.opts), &buf)

			err := (&Compile{Source: src}).Run(ctx)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Run() error = %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_Run_WritesFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.yaml", "body:\n  - val: \"1 + 2\"\n")
	out := filepath.Join(dir, "out.js")

	ctx := WithOptions(t.Context(), Options{Out: out})
	if err := (&Compile{Source: src}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "1+2;\n" {
		t.Errorf("out.js = %q, %v", data, err)
	}
}

func TestCompile_Run_MissingSource(t *testing.T) {
	err := (&Compile{Source: filepath.Join(t.TempDir(), "none.yaml")}).Run(t.Context())
	if !errors.Is(err, program.ErrRead) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Run() error = %v, want ErrRead wrapping ErrNotExist", err)
	}
}

func TestFmt_Run(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.yaml", testProgram)

	var listing bytes.Buffer
	if err := (&Fmt{Source: src}).Run(WithOutput(t.Context(), &listing)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if n := strings.Count(listing.String(), "\n"); n != 2 {
		t.Errorf("listing has %d lines:\n%s", n, listing.String())
	}

	var doc bytes.Buffer
	if err := (&Fmt{Source: src, YAML: true, Indent: 2}).Run(WithOutput(t.Context(), &doc)); err != nil {
		t.Fatalf("Run(--yaml) error = %v", err)
	}

	prog, err := program.Parse(t.Context(), "fmt.yaml", doc.Bytes())
	if err != nil {
		t.Fatalf("formatted document does not parse: %v\n%s", err, doc.String())
	}

	want := il.NewBlock(
		il.VarDeclare("t", il.IntType(), il.Int(80)),
		il.Val(il.FnCall("console.log", il.Name("t"))),
	)
	if !prog.Body.Equal(want) {
		t.Errorf("formatted body = %s", prog.Body)
	}
}

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{"create new config", false, false, nil},
		{"overwrite with force", true, true, nil},
		{"fail without force", false, true, ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				writeFile(t, filepath.Dir(confPath), "config.yaml", "existing: true\n")
			}

			var cli struct {
				Target  string   `default:"es6"`
				Prelude []string `default:"console"`
				Empty   string
				Depth   int `default:"3"`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(t.Context(), ktx))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("config is not YAML: %v\n%s", err, data)
			}

			if got["target"] != "es6" || fmt.Sprint(got["depth"]) != "3" {
				t.Errorf("config = %v", got)
			}

			if _, ok := got["empty"]; ok {
				t.Errorf("unset flag written: %v", got)
			}

			if _, ok := got["help"]; ok {
				t.Errorf("help flag written: %v", got)
			}
		})
	}
}

func TestInit_Run_NoContext(t *testing.T) {
	if err := (&Init{}).Run(context.Background()); !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Run() error = %v, want ErrWriteConfig", err)
	}
}

func TestSearchPath(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	for _, d := range []string{a, b} {
		if err := os.Mkdir(d, 0o700); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv(PathEnv, b+string(os.PathListSeparator)+filepath.Join(dir, "missing"))

	got := SearchPath([]string{a}, b)
	if len(got) < 2 || got[0] != a || !slices.Contains(got, b) {
		t.Errorf("SearchPath() = %v, want %s first then %s", got, a, b)
	}

	if slices.Contains(got, filepath.Join(dir, "missing")) {
		t.Errorf("SearchPath() kept a missing directory: %v", got)
	}
}

func TestLoadPreludes_SameFile(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "console.yaml", testPrelude)
	link := filepath.Join(dir, "alias.yaml")

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	decls, err := loadPreludes(t.Context(), Options{
		Prelude:    []string{"console", link, target},
		SearchPath: []string{dir},
	})
	if err != nil {
		t.Fatalf("loadPreludes() error = %v", err)
	}

	if len(decls) != 1 || decls[0].Name != "console.log" {
		t.Errorf("loadPreludes() = %+v, want one console.log", decls)
	}
}
