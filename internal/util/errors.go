package util

import "errors"

var (
	// auth
	ErrCreatorNotFound    = errors.New("creator not found")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")

	// ordering
	ErrOrderOutOfRange = errors.New("order out of range")

	// sections
	ErrItemWithoutQuestions = errors.New("item has no questions")
	ErrStartAfterEnd        = errors.New("start item must be before or equal to end item")
	ErrSectionOverlap       = errors.New("sections overlap")
	ErrNotImplemented       = errors.New("not implemented")

	// preconditions
	ErrOptionNotOfItem  = errors.New("expected option does not belong to item")
	ErrDifferentSurveys = errors.New("items do not belong to the same survey")
	ErrNextItemIsSource = errors.New("next item must differ from source item")

	// answers
	ErrOptionRequired      = errors.New("option is required")
	ErrContentRequired     = errors.New("content is required")
	ErrQuestionNotInSurvey = errors.New("question not found in survey")
	ErrSurveyPaused        = errors.New("survey is paused")

	// submissions
	ErrAlreadySubmitted = errors.New("user already submitted")

	// interviewees
	ErrIntervieweeExists = errors.New("interviewee already in address book")

	// sending
	ErrAlreadySent = errors.New("survey has already been sent to some of the recipients")
)
