package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// RenderMarkdown formats a single analysis for recruiters.
func RenderMarkdown(result models.AnalysisResult) string {
	skills := "Not listed"
	if len(result.TopSkills) > 0 {
		skills = strings.Join(result.TopSkills, models.ListSeparator)
	}

	gaps := "None"
	if len(result.TopGaps) > 0 {
		gaps = strings.Join(result.TopGaps, models.ListSeparator)
	}

	return fmt.Sprintf(`## 🧑‍💻 Recruiter Summary
%s

### ⭐ Top Skills
- %s

### ⚠️ Top Gaps
- %s

### ✅ Recommendation
%s
`, result.Summary, skills, gaps, result.Recommendation)
}

// MarkdownToHTML renders Markdown with GitHub-flavoured extensions.
func MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// ScoreChart draws the fit score as a pie. The score is clamped to [0, 100].
func ScoreChart(score int) string {
	score = models.ClampScore(score)
	return fmt.Sprintf(`<div style='display:flex;justify-content:center;margin-top:10px;'>
  <div style="width:160px;height:160px;border-radius:50%%;background:conic-gradient(#2ecc71 0%% %[1]d%%, #e74c3c %[1]d%% 100%%);display:flex;align-items:center;justify-content:center;box-shadow:0 4px 12px rgba(0,0,0,0.15);font-family:Inter,system-ui;">
    <div style='text-align:center;'>
      <div style='font-size:24px;font-weight:700;color:#0f172a;'>%[1]d%%</div>
      <div style='font-size:12px;color:#555;'>Fit Score</div>
    </div>
  </div>
</div>`, score)
}
