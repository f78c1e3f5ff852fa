package ui

import "odatatable/internal/model"

type tableController interface {
	MoveDown()
	MoveUp()
	JumpToTop()
	JumpToBottom()
	HalfPageDown(pageSize int)
	HalfPageUp(pageSize int)
	Selected() (model.Person, bool)
}
