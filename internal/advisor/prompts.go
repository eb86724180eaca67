package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

const skillExtractionPrompt = `Extract all technical and soft skills from the resume below.
ONLY respond with a JSON array of strings, where each string is a skill. Do NOT include explanations or extra text outside the JSON array.

Resume Text:
%s`

const roadmapPrompt = `Act as a personalized AI career advisor. Output a detailed career roadmap and advice.
User Details:
Name: %s
Age: %d
Domain: %s
Skills: %s
Psychometric Profile: %s

Provide a JSON object with two keys:
1. "career_advice": A comprehensive, well-structured career plan in Markdown format, covering short-term goals, long-term goals, learning paths, and recommended projects.
2. "roadmap_svg": An SVG diagram (raw SVG string) visualizing the learning roadmap or career progression, if possible. If not, return an empty string for this key.

Example JSON structure:
{
  "career_advice": "# Career Path for %s...",
  "roadmap_svg": "<svg>...</svg>"
}

Return ONLY the JSON object, no markdown, no explanation.`

const skillGapPrompt = `Given the user's current skills: %s, and their desired domain: %s,
identify key missing skills (top 5 most crucial) and list priority skills (top 3 for immediate focus).
Provide the output in JSON format with "missing_skills" (array of strings) and "priority_skills" (array of strings).
Example:
{
  "missing_skills": ["Cloud Security", "Advanced Machine Learning", "DevOps Practices"],
  "priority_skills": ["Python Proficiency", "Data Structures", "SQL"]
}

Return ONLY the JSON object, no markdown, no explanation.`

const coursesPrompt = `Recommend 3 high-quality, comprehensive YouTube course links for someone in the %s domain looking to upskill.
Provide ONLY the direct YouTube URLs, one per line. Do not include any other text or formatting.`

func buildSkillExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(skillExtractionPrompt, resumeText)
}

func buildRoadmapPrompt(profile UserProfile, skills []string) string {
	traits, err := json.Marshal(profile.Psychometric)
	if err != nil {
		traits = []byte("{}")
	}
	return fmt.Sprintf(roadmapPrompt,
		profile.Name,
		profile.Age,
		profile.Domain,
		strings.Join(skills, ", "),
		string(traits),
		profile.Name,
	)
}

func buildSkillGapPrompt(domain string, skills []string) string {
	return fmt.Sprintf(skillGapPrompt, strings.Join(skills, ", "), domain)
}

func buildCoursesPrompt(domain string) string {
	return fmt.Sprintf(coursesPrompt, domain)
}
