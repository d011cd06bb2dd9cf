package panel

import (
	"strings"
	"testing"
)

func TestExtractDisplay_PartsContent(t *testing.T) {
	raw := []byte(`{
		"model": "m1",
		"messages": [
			{"role": "system", "content": "prompt"},
			{"role": "user", "content": [
				{"type": "text", "text": "the story"},
				{"type": "image_url", "image_url": {"url": "data:image/png;base64,QUJD"}}
			]}
		]
	}`)
	d := extractDisplay(raw)
	if d.Model != "m1" {
		t.Errorf("model = %q", d.Model)
	}
	if d.Story != "the story" {
		t.Errorf("story = %q", d.Story)
	}
	if d.ScreenshotB64 != "QUJD" {
		t.Errorf("screenshot = %q", d.ScreenshotB64)
	}
}

func TestExtractDisplay_StringContent(t *testing.T) {
	raw := []byte(`{"model":"m","messages":[{"role":"user","content":"plain story"}]}`)
	d := extractDisplay(raw)
	if d.Story != "plain story" {
		t.Errorf("story = %q", d.Story)
	}
	if d.ScreenshotB64 != "" {
		t.Errorf("screenshot = %q", d.ScreenshotB64)
	}
}

func TestExtractDisplay_JPEG(t *testing.T) {
	raw := []byte(`{"messages":[{"role":"user","content":[{"type":"image_url","image_url":{"url":"data:image/jpeg;base64,WFla"}}]}]}`)
	if d := extractDisplay(raw); d.ScreenshotB64 != "WFla" {
		t.Errorf("screenshot = %q", d.ScreenshotB64)
	}
}

func TestExtractDisplay_BadJSON(t *testing.T) {
	if d := extractDisplay([]byte("{nope")); d != (display{}) {
		t.Errorf("bad json should yield empty display, got %+v", d)
	}
}

func TestStripAndInjectRoundTrip(t *testing.T) {
	original := `{"url":"data:image/png;base64,QUJDMTIz=="}`
	stripped := stripImages(original)
	if strings.Contains(stripped, "QUJDMTIz") {
		t.Fatalf("strip left base64 behind: %q", stripped)
	}
	if !strings.Contains(stripped, imagePlaceholder) {
		t.Fatalf("no placeholder in %q", stripped)
	}

	out := injectImage(stripped, "TkVX", original)
	if out != `{"url":"data:image/png;base64,TkVX"}` {
		t.Errorf("inject = %q", out)
	}
}

func TestInjectKeepsJPEGPrefix(t *testing.T) {
	original := `"data:image/jpeg;base64,QUJD"`
	stripped := stripImages(original)
	out := injectImage(stripped, "WFla", original)
	if out != `"data:image/jpeg;base64,WFla"` {
		t.Errorf("inject = %q", out)
	}
}

func TestStripLeavesPlainBodiesAlone(t *testing.T) {
	body := `{"messages":[{"role":"user","content":"no images here"}]}`
	if got := stripImages(body); got != body {
		t.Errorf("strip changed %q to %q", body, got)
	}
}
