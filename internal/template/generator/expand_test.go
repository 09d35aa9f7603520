package generator

import (
	"fmt"
	"testing"

	"github.com/quarry-dev/quarry/internal/template/render"
)

func TestExpandPathNoLoops(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		bindings render.Bindings
		want     string
	}{
		{
			name:     "plain path",
			path:     "lib/main.dart",
			bindings: render.Bindings{},
			want:     "lib/main.dart",
		},
		{
			name:     "variable in path",
			path:     "lib/{{name}}/app.dart",
			bindings: render.Bindings{"name": "shop"},
			want:     "lib/shop/app.dart",
		},
		{
			name:     "transform in path",
			path:     "src/{{snakeCase name}}.go",
			bindings: render.Bindings{"name": "MyWidget"},
			want:     "src/my_widget.go",
		},
		{
			name:     "non-list section removed",
			path:     "lib/{{#name}}x{{/name}}main.dart",
			bindings: render.Bindings{"name": "shop"},
			want:     "lib/main.dart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandPath(tt.path, tt.bindings)
			if len(got) != 1 {
				t.Fatalf("expected 1 expansion, got %d", len(got))
			}
			if got[0].Path != tt.want {
				t.Errorf("path = %q, want %q", got[0].Path, tt.want)
			}
			if len(got[0].Overlay) != 0 {
				t.Errorf("expected empty overlay, got %v", got[0].Overlay)
			}
		})
	}
}

func TestExpandPathSingleList(t *testing.T) {
	bindings := render.Bindings{
		"models": []interface{}{"user", "order"},
	}

	got := ExpandPath("components/{{#models}}{{{.}}}{{/models}}/model.dart", bindings)
	if len(got) != 2 {
		t.Fatalf("expected 2 expansions, got %d", len(got))
	}

	wantPaths := []string{"components/user/model.dart", "components/order/model.dart"}
	for i, want := range wantPaths {
		if got[i].Path != want {
			t.Errorf("expansion %d path = %q, want %q", i, got[i].Path, want)
		}
	}

	// Overlays carry the single element for content rendering.
	if got[0].Overlay["models"] != "user" {
		t.Errorf("overlay[models] = %v, want user", got[0].Overlay["models"])
	}
	if got[1].Overlay["models"] != "order" {
		t.Errorf("overlay[models] = %v, want order", got[1].Overlay["models"])
	}
}

func TestExpandPathElementField(t *testing.T) {
	bindings := render.Bindings{
		"services": []interface{}{
			map[string]interface{}{"name": "auth", "port": 8080},
			map[string]interface{}{"name": "billing", "port": 8081},
		},
	}

	got := ExpandPath("svc/{{#services}}{{{name}}}{{/services}}/main.go", bindings)
	if len(got) != 2 {
		t.Fatalf("expected 2 expansions, got %d", len(got))
	}
	if got[0].Path != "svc/auth/main.go" || got[1].Path != "svc/billing/main.go" {
		t.Errorf("paths = %q, %q", got[0].Path, got[1].Path)
	}
}

func TestExpandPathCartesianProduct(t *testing.T) {
	// With one loop-bearing path and several list bindings, the number
	// of expansions is the product of the list lengths.
	tests := []struct {
		mLen, kLen int
	}{
		{1, 1},
		{2, 3},
		{3, 2},
		{4, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.mLen, tt.kLen), func(t *testing.T) {
			models := make([]interface{}, tt.mLen)
			for i := range models {
				models[i] = fmt.Sprintf("m%d", i)
			}
			kinds := make([]interface{}, tt.kLen)
			for i := range kinds {
				kinds[i] = fmt.Sprintf("k%d", i)
			}
			bindings := render.Bindings{"models": models, "kinds": kinds}

			got := ExpandPath("{{#kinds}}{{{.}}}{{/kinds}}/{{#models}}{{{.}}}{{/models}}.txt", bindings)
			if len(got) != tt.mLen*tt.kLen {
				t.Fatalf("expected %d expansions, got %d", tt.mLen*tt.kLen, len(got))
			}

			// Every (kind, model) pair appears exactly once.
			seen := map[string]int{}
			for _, exp := range got {
				seen[exp.Path]++
			}
			for k := 0; k < tt.kLen; k++ {
				for m := 0; m < tt.mLen; m++ {
					path := fmt.Sprintf("k%d/m%d.txt", k, m)
					if seen[path] != 1 {
						t.Errorf("path %q seen %d times, want 1", path, seen[path])
					}
				}
			}
		})
	}
}

func TestExpandPathEmptyList(t *testing.T) {
	bindings := render.Bindings{"models": []interface{}{}}

	got := ExpandPath("components/{{#models}}{{{.}}}{{/models}}/model.dart", bindings)
	if got != nil {
		t.Errorf("expected no expansions for empty list, got %v", got)
	}
}

func TestExpandPathUnrelatedListParticipates(t *testing.T) {
	// Permutation runs over every list binding, even ones the path does
	// not reference, so content can vary per permutation.
	bindings := render.Bindings{
		"models": []interface{}{"user"},
		"langs":  []interface{}{"en", "ja"},
	}

	got := ExpandPath("components/{{#models}}{{{.}}}{{/models}}/model.dart", bindings)
	if len(got) != 2 {
		t.Fatalf("expected 2 expansions, got %d", len(got))
	}
	if got[0].Overlay["langs"] != "en" || got[1].Overlay["langs"] != "ja" {
		t.Errorf("overlays = %v, %v", got[0].Overlay, got[1].Overlay)
	}
}

func TestKeepPath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expanded string
		want     bool
	}{
		{"normal path", "lib/{{name}}.dart", "lib/app.dart", true},
		{"empty expansion", "{{name}}", "", false},
		{"whitespace expansion", "{{name}}", "   ", false},
		{"absoluteness gained", "{{dir}}/f.txt", "/f.txt", false},
		{"absoluteness kept", "/etc/{{name}}", "/etc/app", true},
		{"empty segment", "lib/{{name}}/f.txt", "lib//f.txt", false},
		{"backslash normalized", `lib\{{name}}`, `lib\app`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeepPath(tt.template, tt.expanded); got != tt.want {
				t.Errorf("KeepPath(%q, %q) = %v, want %v", tt.template, tt.expanded, got, tt.want)
			}
		})
	}
}
