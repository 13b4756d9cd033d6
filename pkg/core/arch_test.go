package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/sharplint"

// layerRules lists, per package directory relative to the module root, the
// module packages and third-party modules it may import. The stdlib is
// always allowed.
var layerRules = map[string][]string{
	"pkg/core":     {},
	"pkg/token":    {},
	"pkg/syntax":   {modulePath + "/pkg/token"},
	"pkg/parser":   {modulePath + "/pkg/token", modulePath + "/pkg/syntax"},
	"pkg/semantic": {modulePath + "/pkg/token", modulePath + "/pkg/syntax", modulePath + "/pkg/parser"},
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("Failed to resolve module root: %v", err)
	}
	return root
}

// imports returns the imports of the non-test Go files in dir.
func imports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	out := map[string][]string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[entry.Name()] = append(out[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestLayering verifies the low layers only import the packages below them.
func TestLayering(t *testing.T) {
	root := moduleRoot(t)
	for dir, allowed := range layerRules {
		t.Run(dir, func(t *testing.T) {
			allow := map[string]bool{}
			for _, a := range allowed {
				allow[a] = true
			}
			for file, imps := range imports(t, filepath.Join(root, dir)) {
				for _, imp := range imps {
					// stdlib import paths have no dot in the first element
					if !strings.Contains(strings.Split(imp, "/")[0], ".") {
						continue
					}
					if !allow[imp] {
						t.Errorf("%s/%s imports forbidden package: %s", dir, file, imp)
					}
				}
			}
		})
	}
}

// TestPkgDoesNotImportInternal verifies no pkg/ package imports internal/ packages.
func TestPkgDoesNotImportInternal(t *testing.T) {
	root := moduleRoot(t)
	err := filepath.WalkDir(filepath.Join(root, "pkg"), func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() || strings.Contains(path, "testdata") {
			return err
		}
		for file, imps := range imports(t, path) {
			for _, imp := range imps {
				if strings.HasPrefix(imp, modulePath+"/internal/") {
					rel, _ := filepath.Rel(root, path)
					t.Errorf("%s/%s imports internal package: %s (pkg must not import internal packages)", rel, file, imp)
				}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk pkg: %v", err)
	}
}
