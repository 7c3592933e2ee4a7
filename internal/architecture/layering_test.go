package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/"

// TestHexagonalLayerImports walks every module package and checks the
// import direction: domain at the center, ports around it, adapters at
// the rim. Cross-module traffic is allowed only through port/in and dto.
func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module, layer := classify(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(importPath, modulesPrefix) {
				continue
			}
			if why := violation(module, layer, importPath); why != "" {
				t.Fatalf("forbidden import in %s (%s): %s (%s)", slash, layer, importPath, why)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func classify(path string) (module, layer string) {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			module = parts[i+1]
			break
		}
	}
	for _, candidate := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+candidate+"/") {
			layer = candidate
			break
		}
	}
	return module, layer
}

func isPortIn(importPath string) bool {
	return strings.Contains(importPath, "/port/in/") || strings.HasSuffix(importPath, "/port/in")
}

func isDTO(importPath string) bool {
	return strings.Contains(importPath, "/dto/") || strings.HasSuffix(importPath, "/dto")
}

func violation(module, layer, importPath string) string {
	sameModule := strings.HasPrefix(importPath, modulesPrefix+module+"/")
	if !sameModule {
		if strings.Contains(importPath, "/service") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") {
			return "cross-module access to an inner layer"
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return ""
		}
	}

	switch layer {
	case "adapter/in":
		if !isPortIn(importPath) && !isDTO(importPath) {
			return "inbound adapters see only port/in and dto"
		}
	case "usecase":
		if strings.Contains(importPath, "/adapter/") {
			return "usecases must not reach adapters"
		}
	case "service":
		if strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") {
			return "services must not reach adapters or usecases"
		}
	case "domain":
		if strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.Contains(importPath, "/service") {
			return "domain imports nothing above it"
		}
	}
	return ""
}
