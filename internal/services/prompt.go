package services

import (
	"fmt"
	"strings"
)

const resumeSystemPrompt = "You are an expert recruiter. ALWAYS output a strict, valid JSON object. " +
	"No commentary. No markdown. No extra text."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// SystemPrompt returns the instruction pinning the model to the JSON contract.
func (pb *PromptBuilder) SystemPrompt() string {
	return resumeSystemPrompt
}

// BuildResumeAnalysisPrompt creates the user message for one resume.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText, jobTitle, jobDescription string) string {
	return fmt.Sprintf(`Analyze the resume for the job role: "%s"

JOB DESCRIPTION:
%s

RESUME:
%s

Return ONLY this JSON object:

{
  "fit_score": <0-100>,
  "summary": "3-4 line recruiter-friendly summary",
  "top_skills": ["skill1", "skill2"],
  "top_gaps": ["gap1", "gap2"],
  "recommendation": "concise recommendation"
}`,
		strings.TrimSpace(jobTitle), strings.TrimSpace(jobDescription), CleanText(resumeText))
}
