package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrInvalidOTP       = errors.New("invalid or expired OTP")
	ErrOTPThrottled     = errors.New("too many OTP requests, try again later")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrCourseNotFound   = errors.New("course not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrPlanNotFound     = errors.New("study plan not found")
	ErrTaskNotFound     = errors.New("study task not found")
	ErrQuestionNotFound = errors.New("quiz question not found")
	ErrThreadNotFound   = errors.New("assistant thread not found")
	ErrExamNotFound     = errors.New("exam not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrEmptyTopicList   = errors.New("topics list is required")
	ErrChoiceSetInvalid = errors.New("question must have exactly one correct choice")
	ErrPermissionDenied = errors.New("permission denied")
)
