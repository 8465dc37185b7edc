package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("**ceramic** brake pads")
	if !strings.Contains(out, "<strong>ceramic</strong>") {
		t.Errorf("expected bold rendering, got %q", out)
	}
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	out := RenderMarkdown("hello <script>alert(1)</script> world")
	if strings.Contains(out, "<script>") {
		t.Errorf("expected script tag to be stripped, got %q", out)
	}
}

func TestSanitizeText(t *testing.T) {
	out := SanitizeText(`great <b>part</b><img src="x">`)
	if strings.Contains(out, "<") {
		t.Errorf("expected all tags removed, got %q", out)
	}
	if !strings.Contains(out, "great") {
		t.Errorf("expected text content preserved, got %q", out)
	}
}
