// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree

import "time"

// SourceKind names the transcription table a citation points into. Each kind
// has one row in tree.source.
type SourceKind string

const (
	SourceDeath          SourceKind = "death"
	SourceMarriage       SourceKind = "marriage"
	SourceBaptism        SourceKind = "mbaptism"
	SourceCountyMarriage SourceKind = "countymarriage"
)

// Valid reports whether k is a known source.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceDeath, SourceMarriage, SourceBaptism, SourceCountyMarriage:
		return true
	}
	return false
}

// Event is the fact of the person's life a citation supports.
type Event int

const (
	EventBirth    Event = 2
	EventBaptism  Event = 3
	EventDeath    Event = 4
	EventBurial   Event = 5
	EventMarriage Event = 20
)

// Citation ties a transcribed registration to a person of the tree.
//
// Detail locates the registration inside its source ("CAON 1887-12" for a
// death) and is what later page loads look the link up by.
type Citation struct {
	IDSX      int64      `json:"idsx"`
	Source    SourceKind `json:"source"`
	IDIR      int64      `json:"idir"`
	Event     Event      `json:"event"`
	Detail    string     `json:"detail"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}
