package repository

import (
	"adhyeta_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListExams() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("name").Find(&exams).Error
	return exams, err
}

func (r *CatalogRepository) FindExamBySlug(slug string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Where("slug = ?", slug).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *CatalogRepository) FindExamByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *CatalogRepository) CreateExam(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *CatalogRepository) SubjectsByExam(examID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("exam_id = ?", examID).Order("name").Find(&subjects).Error
	return subjects, err
}

func (r *CatalogRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *CatalogRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *CatalogRepository) WeightagesBySubject(subjectID uint) ([]model.SubjectWeightage, error) {
	var weightages []model.SubjectWeightage
	err := r.DB.Where("subject_id = ?", subjectID).
		Order("year DESC").
		Find(&weightages).Error
	return weightages, err
}

func (r *CatalogRepository) CreateWeightage(w *model.SubjectWeightage) error {
	return r.DB.Create(w).Error
}

// ResourcesBySubject lists resources for a subject, optionally filtered
// by kind, in the catalog's display order.
func (r *CatalogRepository) ResourcesBySubject(subjectID uint, kind model.ResourceKind) ([]model.CatalogResource, error) {
	q := r.DB.Where("subject_id = ?", subjectID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var resources []model.CatalogResource
	err := q.Order("kind, year DESC, title").Find(&resources).Error
	return resources, err
}

func (r *CatalogRepository) FindResourceByID(id uint) (*model.CatalogResource, error) {
	var resource model.CatalogResource
	err := r.DB.First(&resource, id).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *CatalogRepository) CreateResource(resource *model.CatalogResource) error {
	return r.DB.Create(resource).Error
}

func (r *CatalogRepository) UpdateResource(resource *model.CatalogResource) error {
	return r.DB.Save(resource).Error
}

func (r *CatalogRepository) DeleteResource(id uint) error {
	return r.DB.Delete(&model.CatalogResource{}, id).Error
}
