package inmemdb

import (
	"github.com/trezcool/gpacalc/core/grading"
)

type sheetRepository struct {
	db *sheetTable
}

func NewSheetRepository(db *DB) grading.SheetRepository {
	return &sheetRepository{db: db.sheet}
}

// evictStalest drops the least recently updated sheet. Caller holds the write lock.
func (repo *sheetRepository) evictStalest() {
	var stalest *grading.Sheet
	for _, s := range repo.db.table {
		if stalest == nil || s.UpdatedAt.Before(stalest.UpdatedAt) {
			stalest = s
		}
	}
	if stalest != nil {
		delete(repo.db.table, stalest.ID)
	}
}

func (repo *sheetRepository) CreateSheet(sheet *grading.Sheet) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, exists := repo.db.table[sheet.ID]; !exists && len(repo.db.table) >= repo.db.max {
		repo.evictStalest()
	}
	repo.db.table[sheet.ID] = sheet.Clone()
	return nil
}

func (repo *sheetRepository) GetSheet(id string) (*grading.Sheet, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return s.Clone(), nil
	}
	return nil, grading.ErrSheetNotFound
}

func (repo *sheetRepository) UpdateSheet(id string, fn func(*grading.Sheet) error) (*grading.Sheet, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s, ok := repo.db.table[id]
	if !ok {
		return nil, grading.ErrSheetNotFound
	}
	// work on a copy so a failed update leaves the stored sheet untouched
	upd := s.Clone()
	if err := fn(upd); err != nil {
		return nil, err
	}
	repo.db.table[id] = upd
	return upd.Clone(), nil
}

func (repo *sheetRepository) DeleteSheet(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return grading.ErrSheetNotFound
	}
	delete(repo.db.table, id)
	return nil
}
