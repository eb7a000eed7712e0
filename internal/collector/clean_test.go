package collector

import (
	"strings"
	"testing"
)

func TestCleanHTMLStripsBoilerplate(t *testing.T) {
	html := `<html><body>
		<nav>Home | About</nav>
		<script>alert("x")</script>
		<style>p { color: red }</style>
		<p>First paragraph.</p>
		<p>Second paragraph.</p>
		<footer>Copyright</footer>
	</body></html>`

	got := CleanHTML(html)

	for _, banned := range []string{"alert", "color: red", "Home | About", "Copyright"} {
		if strings.Contains(got, banned) {
			t.Fatalf("boilerplate %q leaked into output:\n%s", banned, got)
		}
	}
	if !strings.Contains(got, "First paragraph.") || !strings.Contains(got, "Second paragraph.") {
		t.Fatalf("paragraph text missing:\n%s", got)
	}
}

func TestCleanHTMLOneLinePerBlock(t *testing.T) {
	got := CleanHTML(`<h2>Heading</h2><p>Body.</p><li>Item.</li>`)

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "Heading" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestCleanHTMLFallsBackToBareText(t *testing.T) {
	got := CleanHTML(`<div>Just a summary with <b>bold</b> text.</div>`)
	if got != "Just a summary with bold text." {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestCleanHTMLEmptyInput(t *testing.T) {
	if got := CleanHTML(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
