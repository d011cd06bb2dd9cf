package action

import (
	"reflect"
	"testing"
)

func TestExtractActions(t *testing.T) {
	raw := "NARRATIVE:\nI will click the button.\n\nACTIONS:\nleft_click(500,500)\ntype(\"hi\")\n"
	got := ExtractActions(raw)
	want := []string{"left_click(500,500)", `type("hi")`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractActions_CaseAndColon(t *testing.T) {
	raw := "narrative\ntext with coords 500,500 stays out\nactions\nscreenshot()"
	got := ExtractActions(raw)
	want := []string{"screenshot()"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractActions_NoSection(t *testing.T) {
	if got := ExtractActions("left_click(1,2)\n"); got != nil {
		t.Fatalf("expected no actions outside an ACTIONS section, got %v", got)
	}
}

func TestExtractActions_SkipsBlankLines(t *testing.T) {
	raw := "ACTIONS:\n\nleft_click(1,2)\n   \ndrag(1,2,3,4)\n"
	got := ExtractActions(raw)
	want := []string{"left_click(1,2)", "drag(1,2,3,4)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
