package kpi

import "errors"

var (
	ErrSheetNotFound     = errors.New("KPI sheet not found")
	ErrSheetExists       = errors.New("KPI sheet already exists for this month")
	ErrSheetLocked       = errors.New("KPI sheet is locked for editing")
	ErrNotSheetOwner     = errors.New("Only the sheet owner can perform this action")
	ErrInvalidTransition = errors.New("Action not allowed in the sheet's current status")
	ErrCommentsRequired  = errors.New("Comments are required when rejecting")
	ErrNotSignatory      = errors.New("Not an assigned signatory for this stage")
	ErrRowNotFound       = errors.New("KPI row not found")
	ErrRowNotCustom      = errors.New("Only custom rows can be removed")
	ErrInvalidDay        = errors.New("Day is outside the sheet's month")
	ErrInvalidDayType    = errors.New("Unknown day status type")
	ErrInvalidRowValue   = errors.New("Invalid value for this row type")
	ErrTemplateNotFound  = errors.New("KPI template not found")
	ErrTemplateNameTaken = errors.New("A template with this name already exists")
	ErrTemplateInUse     = errors.New("Template is referenced by existing sheets")
)
