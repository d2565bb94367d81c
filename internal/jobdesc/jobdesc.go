// Package jobdesc extracts keywords from job-description text using simple
// pattern rules: a technology-name table, experience-level phrases, and a
// soft-skill phrase list. No model call is involved; this is the offline
// complement to the LLM extraction path.
package jobdesc

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/matching"
)

// technologyNames is the static table of technology keywords recognized in
// job descriptions. Data, not code: extend the table, not the logic.
var technologyNames = []string{
	"Java", "Python", "JavaScript", "TypeScript", "Go", "Rust", "C++", "C#",
	"Ruby", "PHP", "Swift", "Kotlin", "SQL", "NoSQL", "HTML", "CSS",
	"React", "Angular", "Vue", "Node.js", "Django", "Spring", "Rails",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Kafka",
	"Git", "Jenkins", "CI/CD", "GraphQL", "REST", "gRPC", "Linux",
	"Selenium", "Cypress", "Tableau", "Spark", "Airflow", "Salesforce",
	"Figma", "Jira", "Excel",
}

// softSkillPhrases is the static table of soft-skill phrases.
var softSkillPhrases = []string{
	"communication", "leadership", "teamwork", "collaboration",
	"problem solving", "problem-solving", "critical thinking",
	"time management", "adaptability", "attention to detail",
	"stakeholder management", "mentoring", "self-starter",
	"cross-functional", "customer focus",
}

// experiencePattern matches experience-level phrases like "5+ years" or
// "3 years of experience".
var experiencePattern = regexp.MustCompile(`(?i)\b\d+\+?\s*(?:-\s*\d+\s*)?years?(?:\s+of)?(?:\s+\w+){0,2}\s+experience\b|\b\d+\+?\s*years?\b`)

// Keywords extracts all pattern-rule keywords found in the job description,
// deduplicated, technology names first, then soft skills, then experience
// phrases in order of appearance.
func Keywords(jobDescription string) []string {
	if strings.TrimSpace(jobDescription) == "" {
		return []string{}
	}

	out := matching.Found(jobDescription, technologyNames)
	out = append(out, matching.Found(jobDescription, softSkillPhrases)...)

	seen := make(map[string]bool, len(out))
	for _, kw := range out {
		seen[strings.ToLower(kw)] = true
	}
	for _, phrase := range experiencePattern.FindAllString(jobDescription, -1) {
		phrase = strings.TrimSpace(phrase)
		key := strings.ToLower(phrase)
		if phrase != "" && !seen[key] {
			seen[key] = true
			out = append(out, phrase)
		}
	}
	return out
}
