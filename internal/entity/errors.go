package entity

import "errors"

// Domain errors shared by the dictionary, the field registry and the review queue.
var (
	ErrRootNotFound       = errors.New("word root not found")
	ErrDuplicateAbbr      = errors.New("word root abbreviation already exists")
	ErrRootReferenced     = errors.New("word root is referenced by standard fields")
	ErrInvalidRoot        = errors.New("invalid word root")
	ErrFieldNotFound      = errors.New("standard field not found")
	ErrDuplicateFieldName = errors.New("standard field name already exists")
	ErrFieldIncomplete    = errors.New("standard field composition is incomplete")
	ErrInvalidField       = errors.New("invalid standard field")
	ErrTaskNotFound       = errors.New("notification task not found")
	ErrTaskResolved       = errors.New("notification task already resolved")
	ErrInvalidTaskType    = errors.New("invalid notification task type")
	ErrEmptyDescription   = errors.New("field description is empty")
	ErrInvalidArgument    = errors.New("invalid argument")
)
