package model

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "med"
	Hard   Difficulty = "hard"
)

type QuizQuestion struct {
	BaseModel
	TopicID     uint         `gorm:"index;not null" json:"topicId"`
	Text        string       `gorm:"type:text;not null" json:"text"`
	Difficulty  Difficulty   `gorm:"type:varchar(8);default:'easy'" json:"difficulty"`
	Explanation string       `gorm:"type:text" json:"explanation"`
	Choices     []QuizChoice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizChoice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (QuizChoice) TableName() string {
	return "quiz_choices"
}

// QuizAttempt and its answers are written once at submission time and
// never mutated after scoring.
type QuizAttempt struct {
	BaseModel
	UserID  uint            `gorm:"index;not null" json:"userId"`
	Score   int             `gorm:"default:0" json:"score"`
	Total   int             `gorm:"default:0" json:"total"`
	Source  string          `gorm:"size:32;default:'weekly'" json:"source"`
	Answers []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type AttemptAnswer struct {
	BaseModel
	AttemptID  uint  `gorm:"index;not null" json:"attemptId"`
	QuestionID uint  `gorm:"not null" json:"questionId"`
	ChoiceID   *uint `json:"choiceId"`
	Correct    bool  `gorm:"default:false" json:"correct"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
