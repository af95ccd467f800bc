package inmemdb

import (
	"sync"

	"github.com/trezcool/gpacalc/core/grading"
)

// DefaultMaxSheets is used when Open is given no positive capacity.
const DefaultMaxSheets = 1000

type (
	// DB keeps everything in process memory; nothing survives a restart.
	DB struct {
		sheet *sheetTable
	}

	sheetTable struct {
		sync.RWMutex
		table map[string]*grading.Sheet
		max   int
	}
)

func Open(maxSheets int) (*DB, error) {
	if maxSheets <= 0 {
		maxSheets = DefaultMaxSheets
	}
	db := &DB{
		sheet: &sheetTable{table: make(map[string]*grading.Sheet), max: maxSheets},
	}
	return db, nil
}
