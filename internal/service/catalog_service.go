package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"adhyeta_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	examListCacheKey = "catalog:exams"
	examListCacheTTL = 5 * time.Minute
)

// CatalogService serves the exam/subject/resource catalog. The exam
// list is the hottest read, so it is cached in redis; every catalog
// write invalidates it.
type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
	Redis       *redis.Client
}

func NewCatalogService(catalogRepo *repository.CatalogRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{CatalogRepo: catalogRepo, Redis: rdb}
}

func (s *CatalogService) ListExams(ctx context.Context) ([]model.Exam, error) {
	if cached, err := s.Redis.Get(ctx, examListCacheKey).Result(); err == nil {
		var exams []model.Exam
		if err := json.Unmarshal([]byte(cached), &exams); err == nil {
			return exams, nil
		}
	}

	exams, err := s.CatalogRepo.ListExams()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(exams); err == nil {
		if err := s.Redis.Set(ctx, examListCacheKey, payload, examListCacheTTL).Err(); err != nil {
			logger.Log.Warn("exam list cache write failed", zap.Error(err))
		}
	}

	return exams, nil
}

func (s *CatalogService) GetExamBySlug(slug string) (*model.Exam, error) {
	exam, err := s.CatalogRepo.FindExamBySlug(slug)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}

	subjects, err := s.CatalogRepo.SubjectsByExam(exam.ID)
	if err != nil {
		return nil, err
	}
	exam.Subjects = subjects

	return exam, nil
}

func (s *CatalogService) CreateExam(ctx context.Context, exam *model.Exam) error {
	if err := s.CatalogRepo.CreateExam(exam); err != nil {
		return err
	}
	s.invalidateExamCache(ctx)
	return nil
}

// SubjectDetail bundles a subject with its weightage history.
type SubjectDetail struct {
	Subject    *model.Subject           `json:"subject"`
	Weightages []model.SubjectWeightage `json:"weightages"`
}

func (s *CatalogService) GetSubject(subjectID uint) (*SubjectDetail, error) {
	subject, err := s.CatalogRepo.FindSubjectByID(subjectID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSubjectNotFound
	}
	if err != nil {
		return nil, err
	}

	weightages, err := s.CatalogRepo.WeightagesBySubject(subjectID)
	if err != nil {
		return nil, err
	}

	return &SubjectDetail{Subject: subject, Weightages: weightages}, nil
}

func (s *CatalogService) CreateSubject(ctx context.Context, subject *model.Subject) error {
	if _, err := s.CatalogRepo.FindExamByID(subject.ExamID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrExamNotFound
		}
		return err
	}

	if err := s.CatalogRepo.CreateSubject(subject); err != nil {
		return err
	}
	s.invalidateExamCache(ctx)
	return nil
}

func (s *CatalogService) CreateWeightage(w *model.SubjectWeightage) error {
	if _, err := s.CatalogRepo.FindSubjectByID(w.SubjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return s.CatalogRepo.CreateWeightage(w)
}

func (s *CatalogService) Resources(subjectID uint, kind model.ResourceKind) ([]model.CatalogResource, error) {
	if _, err := s.CatalogRepo.FindSubjectByID(subjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return s.CatalogRepo.ResourcesBySubject(subjectID, kind)
}

func (s *CatalogService) CreateResource(resource *model.CatalogResource) error {
	if _, err := s.CatalogRepo.FindSubjectByID(resource.SubjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return s.CatalogRepo.CreateResource(resource)
}

func (s *CatalogService) UpdateResource(id uint, update *model.CatalogResource) (*model.CatalogResource, error) {
	resource, err := s.CatalogRepo.FindResourceByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}

	resource.Kind = update.Kind
	resource.Title = update.Title
	resource.URL = update.URL
	resource.Source = update.Source
	resource.Year = update.Year
	resource.SolutionURL = update.SolutionURL

	if err := s.CatalogRepo.UpdateResource(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *CatalogService) DeleteResource(id uint) error {
	if _, err := s.CatalogRepo.FindResourceByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrResourceNotFound
		}
		return err
	}
	return s.CatalogRepo.DeleteResource(id)
}

func (s *CatalogService) invalidateExamCache(ctx context.Context) {
	if err := s.Redis.Del(ctx, examListCacheKey).Err(); err != nil {
		logger.Log.Warn("exam list cache invalidation failed", zap.Error(err))
	}
}
