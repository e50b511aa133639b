package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"interviewai/internal/model"
)

const escapeRule = `CRITICAL: Ensure all double quotes inside JSON string values are properly escaped with a backslash (e.g., "a \"quoted\" word").`

// BuildTechStackPrompt asks for the technologies named in a job description.
func BuildTechStackPrompt(jobDescription string) string {
	return fmt.Sprintf(`Analyze the following job description and extract the key technical skills, programming languages, frameworks, and technologies mentioned.

Job Description: %s

Return only a valid JSON object with a single key "tech_stack" containing a list of strings.
Example: {"tech_stack": ["Python", "React", "Docker"]}`, jobDescription)
}

// BuildGeneralQuestionsPrompt asks for count questions scaled to the
// candidate's experience, each with five answer points.
func BuildGeneralQuestionsPrompt(jobDescription string, count, years int) string {
	var bands strings.Builder
	for _, y := range experienceBands {
		bands.WriteString("- " + ExperienceBand(y) + "\n")
	}

	return fmt.Sprintf(`You are a senior technical interviewer. Generate exactly %d highly technical and concise interview questions for a candidate with %d years of experience.

IMPORTANT: Adjust question complexity based on experience level:
%s
This candidate falls in the band "%s".

Job Description: %s

CRITICAL: You MUST return a JSON object with this EXACT structure. Each question must have answer_points with exactly 5 bullet points.
%s

{
    "questions": [
        {
            "question": "Your concise technical question here",
            "answer_points": ["Key point 1", "Key point 2", "Key point 3", "Key point 4", "Key point 5"]
        }
    ]
}`, count, years, bands.String(), ExperienceBand(years), jobDescription, escapeRule)
}

// BuildTechQuestionsPrompt asks for one question per technology.
func BuildTechQuestionsPrompt(techStack []string, years int) string {
	list, _ := json.Marshal(techStack)

	return fmt.Sprintf(`For each technology in this list: %s

Generate exactly one concise technical interview question for each technology that:
1. Tests deep technical understanding
2. Is appropriate for someone with %d years of experience (%s)

Keep the technologies in the order given.

CRITICAL: You MUST return a JSON object with this EXACT structure. Each question must have answer_points with exactly 5 bullet points.
%s

{
    "tech_questions": [
        {
            "technology": "Technology name",
            "question": "Your concise technical question",
            "answer_points": ["Key point 1", "Key point 2", "Key point 3", "Key point 4", "Key point 5"]
        }
    ]
}`, list, years, ExperienceBand(years), escapeRule)
}

// BuildAnswerEvaluationPrompt asks for a 1-10 grade and feedback.
func BuildAnswerEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are a senior technical interviewer evaluating a candidate's answer to a technical question. Assess the answer for accuracy, depth, and clarity.

Provide a score from 1 to 10 and detailed feedback.

CRITICAL: Return your response strictly in the following JSON format. Ensure any double quotes in the feedback are escaped.
{
    "grade": "a score between 1 and 10",
    "feedback": "technically detailed feedback"
}

Question: %s
Answer: %s`, question, answer)
}

// BuildFinalEvaluationPrompt embeds every exchange and its feedback.
func BuildFinalEvaluationPrompt(req model.FinalEvaluationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a senior technical interviewer providing a final, critical evaluation. Be strict and do not inflate scores.

Candidate Name: %s
Years of Experience: %d
Job Description: %s

Interview Questions, Answers, and Feedback:
`, req.CandidateName, req.YearsExperience, req.JobDescription)

	for i, qa := range req.QAPairs {
		n := i + 1
		fmt.Fprintf(&b, "\nQ%d: %s\n", n, orNA(qa.Question))
		fmt.Fprintf(&b, "A%d: %s\n", n, orNA(qa.Answer))
		if qa.Feedback != "" {
			fmt.Fprintf(&b, "Feedback: %s\n", qa.Feedback)
		}
	}

	b.WriteString(`
Based on the above, provide a comprehensive final evaluation.

CRITICAL: Format your response as a valid JSON object with these exact keys: "overall_score", "strengths", "areas_for_improvement", "technical_assessment", "recommendations".
- "overall_score" should be an integer from 0-100.
- All other fields should be strings. Ensure any double quotes within these strings are properly escaped.`)

	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
