package model

// GenerateQuestionsRequest is the body of POST /generate-questions.
type GenerateQuestionsRequest struct {
	JobDescription  string `json:"job_description" binding:"required"`
	NumQuestions    int    `json:"num_questions" binding:"omitempty,min=1,max=50"`
	YearsExperience int    `json:"years_experience" binding:"min=0,max=60"`
}

// DefaultNumQuestions is used when the request does not set num_questions.
const DefaultNumQuestions = 5

// QuestionCount returns the requested count or the default.
func (r GenerateQuestionsRequest) QuestionCount() int {
	if r.NumQuestions <= 0 {
		return DefaultNumQuestions
	}
	return r.NumQuestions
}

// GeneralQuestion is a job-description level question with its grading rubric.
type GeneralQuestion struct {
	Question     string   `json:"question"`
	AnswerPoints []string `json:"answer_points"`
}

// TechQuestion targets one technology from the extracted tech stack.
type TechQuestion struct {
	Technology   string   `json:"technology"`
	Question     string   `json:"question"`
	AnswerPoints []string `json:"answer_points"`
}

// QuestionSet is the combined output of the three generation steps.
type QuestionSet struct {
	GeneralQuestions []GeneralQuestion `json:"general_questions"`
	TechQuestions    []TechQuestion    `json:"tech_questions"`
	TechStack        []string          `json:"tech_stack"`
}
