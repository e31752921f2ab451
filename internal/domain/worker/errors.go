package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrWorkerInactive = errors.New("worker is inactive")
)
