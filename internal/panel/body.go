package panel

import (
	"encoding/json"
	"regexp"
	"strings"
)

const imagePlaceholder = "<IMAGE_ON_CANVAS>"

var (
	dataURLRe       = regexp.MustCompile(`data:image/[a-z]+;base64,[A-Za-z0-9+/=]+`)
	dataURLPrefixRe = regexp.MustCompile(`data:image/(png|jpeg);base64,`)
)

// display is what the browser shows for an intercepted request.
type display struct {
	Model         string `json:"model"`
	Story         string `json:"story"`
	ScreenshotB64 string `json:"screenshot_b64"`
}

// extractDisplay pulls the model, story text, and screenshot out of a
// chat completions body. The story is the text part of the user message;
// string-content user messages count as story too.
func extractDisplay(raw []byte) display {
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	d := display{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return d
	}
	d.Model = body.Model

	for _, m := range body.Messages {
		if m.Role != "user" {
			continue
		}
		var parts []struct {
			Type     string `json:"type"`
			Text     string `json:"text"`
			ImageURL struct {
				URL string `json:"url"`
			} `json:"image_url"`
		}
		if err := json.Unmarshal(m.Content, &parts); err == nil {
			for _, p := range parts {
				switch p.Type {
				case "text":
					d.Story = p.Text
				case "image_url":
					for _, pfx := range []string{"data:image/png;base64,", "data:image/jpeg;base64,"} {
						if strings.HasPrefix(p.ImageURL.URL, pfx) {
							d.ScreenshotB64 = p.ImageURL.URL[len(pfx):]
							break
						}
					}
				}
			}
			continue
		}
		var text string
		if err := json.Unmarshal(m.Content, &text); err == nil {
			d.Story = text
		}
	}
	return d
}

// stripImages replaces inline base64 images with a placeholder so the
// browser edits a readable body.
func stripImages(raw string) string {
	return dataURLRe.ReplaceAllString(raw, imagePlaceholder)
}

// injectImage restores the image into an edited stripped body, keeping
// the original data URL flavor.
func injectImage(stripped, b64, originalRaw string) string {
	prefix := "data:image/png;base64,"
	if m := dataURLPrefixRe.FindString(originalRaw); m != "" {
		prefix = m
	}
	return strings.ReplaceAll(stripped, imagePlaceholder, prefix+b64)
}
