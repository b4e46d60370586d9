package model

type Exam struct {
	BaseModel
	Name        string    `gorm:"size:120;unique;not null" json:"name"`
	Grade       string    `gorm:"size:40" json:"grade"`
	Slug        string    `gorm:"size:120;unique;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Subjects    []Subject `gorm:"foreignKey:ExamID" json:"subjects,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

type Subject struct {
	BaseModel
	ExamID     uint               `gorm:"uniqueIndex:idx_subject_exam_name;not null" json:"examId"`
	Name       string             `gorm:"size:120;uniqueIndex:idx_subject_exam_name;not null" json:"name"`
	Weightages []SubjectWeightage `gorm:"foreignKey:SubjectID" json:"weightages,omitempty"`
	Resources  []CatalogResource  `gorm:"foreignKey:SubjectID" json:"resources,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}

// SubjectWeightage records the exam-pattern weight of a subject,
// optionally per pattern year.
type SubjectWeightage struct {
	BaseModel
	SubjectID     uint `gorm:"index;not null" json:"subjectId"`
	WeightPercent int  `gorm:"not null" json:"weightPercent"`
	Year          *int `json:"year"`
}

func (SubjectWeightage) TableName() string {
	return "subject_weightages"
}

type ResourceKind string

const (
	KindYouTube ResourceKind = "youtube"
	KindNotes   ResourceKind = "notes"
	KindPaper   ResourceKind = "paper"
)

type CatalogResource struct {
	BaseModel
	SubjectID   uint         `gorm:"index;not null" json:"subjectId"`
	Kind        ResourceKind `gorm:"type:varchar(16);not null" json:"kind"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	URL         string       `gorm:"size:500;not null" json:"url"`
	Source      string       `gorm:"size:120" json:"source"`
	Year        *int         `json:"year"`
	SolutionURL string       `gorm:"size:500" json:"solutionUrl"`
}

func (CatalogResource) TableName() string {
	return "catalog_resources"
}
