// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import "time"

// Status enumerates CartoonJob.status (spec §3, §4.8's state diagram).
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusCanceling  Status = "CANCELING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// CartoonJob tracks one cartoon-generation request (spec §3).
type CartoonJob struct {
	JobID            string    `json:"job_id"`
	UserID           string    `json:"user_id"`
	Status           Status    `json:"status"`
	OriginalImageURL string    `json:"original_image_url"`
	UserText         string    `json:"user_text,omitempty"`
	ResultImageURL   *string   `json:"result_image_url,omitempty"`
	ErrorMessage     *string   `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// transitions enumerates the FSM's legal edges (spec §4.8's diagram):
// PROCESSING may move to CANCELING or either terminal state; CANCELING
// may resolve to FAILED (the worker observes cancellation before issuing
// the generation request) or COMPLETED (a cancellation that lands after
// the worker has already issued the request does not undo the
// already-published Post, per §5's "a worker that has already issued the
// generation request runs to completion"); COMPLETED and FAILED are
// terminal and admit no outgoing edge.
var transitions = map[Status]map[Status]bool{
	StatusProcessing: {StatusCanceling: true, StatusCompleted: true, StatusFailed: true},
	StatusCanceling:  {StatusFailed: true, StatusCompleted: true},
}

// canTransition reports whether moving from to is a legal FSM edge.
func canTransition(from, to Status) bool {
	return transitions[from][to]
}
