package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrAcceptanceLimit = errors.New("acceptance limit exceeded for generation")
)

// Store is the persistence gateway for flashcards, generations and users.
// Every query is scoped by the owning user id; callers must never reach the
// tables without going through these methods.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db)
}

// New wraps an existing GORM connection. Tests use this with in-memory SQLite.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&User{}, &Flashcard{}, &Generation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Flashcards

func (s *Store) CreateFlashcard(ctx context.Context, card *Flashcard) error {
	return s.db.WithContext(ctx).Create(card).Error
}

// CreateAcceptedFlashcard inserts a flashcard accepted from a generation
// batch and bumps the matching counter on the generation record. The counter
// update is a conditional UPDATE guarded by the acceptance ceiling, so two
// rapid accepts against an exhausted batch cannot both slip through; the
// insert and the increment commit or roll back together.
func (s *Store) CreateAcceptedFlashcard(ctx context.Context, card *Flashcard) error {
	if card.GenerationID == nil {
		return fmt.Errorf("accepted flashcard requires a generation id")
	}

	counter := "accepted_full"
	if card.CreationMethod == "ai_edited" {
		counter = "accepted_edited"
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Generation{}).
			Where("id = ? AND user_id = ? AND accepted_full + accepted_edited < total_generated",
				*card.GenerationID, card.UserID).
			UpdateColumn(counter, gorm.Expr(counter+" + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing or foreign generation from an exhausted one.
			var gen Generation
			err := tx.Where("id = ? AND user_id = ?", *card.GenerationID, card.UserID).First(&gen).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			return ErrAcceptanceLimit
		}
		return tx.Create(card).Error
	})
}

func (s *Store) ListFlashcards(ctx context.Context, userID string) ([]Flashcard, error) {
	var cards []Flashcard
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Store) GetFlashcard(ctx context.Context, id, userID string) (*Flashcard, error) {
	var card Flashcard
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (s *Store) UpdateFlashcard(ctx context.Context, id, userID, frontContent, backContent string) (*Flashcard, error) {
	res := s.db.WithContext(ctx).Model(&Flashcard{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"front_content": frontContent,
			"back_content":  backContent,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetFlashcard(ctx, id, userID)
}

func (s *Store) DeleteFlashcard(ctx context.Context, id, userID string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Flashcard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Generations

func (s *Store) CreateGeneration(ctx context.Context, gen *Generation) error {
	return s.db.WithContext(ctx).Create(gen).Error
}

func (s *Store) ListGenerations(ctx context.Context, userID string) ([]Generation, error) {
	var gens []Generation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&gens).Error
	if err != nil {
		return nil, err
	}
	return gens, nil
}

func (s *Store) GetGeneration(ctx context.Context, id, userID string) (*Generation, error) {
	var gen Generation
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&gen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &gen, nil
}

// Stats

func (s *Store) CountFlashcardsByMethod(ctx context.Context, userID, method string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Flashcard{}).
		Where("user_id = ? AND creation_method = ?", userID, method).
		Count(&count).Error
	return count, err
}

func (s *Store) SumTotalGenerated(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&Generation{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_generated), 0)").
		Scan(&total).Error
	return total, err
}
