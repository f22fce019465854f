package openpoints

import "errors"

var (
	ErrProjectNotFound   = errors.New("Project not found")
	ErrPointNotFound     = errors.New("Open point not found")
	ErrNotProjectMember  = errors.New("Not a member of this project")
	ErrMemberExists      = errors.New("User is already a project member")
	ErrMemberNotFound    = errors.New("User is not a project member")
	ErrCannotRemoveOwner = errors.New("The project owner cannot be removed")
)
