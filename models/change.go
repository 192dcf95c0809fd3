// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Table names shared by every storage backend.
const (
	TableUsers   = "usuarios"
	TableRecords = "registros"
	TableBudgets = "presupuestos"
	TableValues  = "valores"
)

// Action names the kind of write that produced a Change.
type Action string

const (
	ActionCreated    Action = "created"
	ActionUpdated    Action = "updated"
	ActionDeleted    Action = "deleted"
	ActionDeletedAll Action = "deleted_all"
)

// Change is published after every successful write. It deliberately carries
// no row data: subscribers re-fetch what they display.
type Change struct {
	Table  string `json:"table"`
	Action Action `json:"action"`
	// ID is zero for ActionDeletedAll.
	ID int64 `json:"id,omitempty"`
}
