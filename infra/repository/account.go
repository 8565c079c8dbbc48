package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository using the provided *gorm.DB.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct := mapAccountCreateToModel(create)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&acct).Error
	})
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModelToDTO(&acct), nil
}

// GetByPhone implements repository.AccountRepository.
func (r *accountRepository) GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&acct).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModelToDTO(&acct), nil
}

// GetForUpdate implements repository.AccountRepository.
// SQLite ignores the locking clause; callers still hold the in-process lock.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var acct Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&acct, "id = ?", id).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModelToDTO(&acct), nil
}

// UpdateBalance implements repository.AccountRepository.
func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, update dto.BalanceUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND version = ?", id, update.ExpectedVersion).
		Updates(map[string]any{
			"balance": update.Balance,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleAccount
	}
	return nil
}

// ExistsByPhone implements repository.AccountRepository.
func (r *accountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

// ExistsByAadhaar implements repository.AccountRepository.
func (r *accountRepository) ExistsByAadhaar(ctx context.Context, aadhaar string) (bool, error) {
	return r.exists(ctx, "aadhaar = ?", aadhaar)
}

func (r *accountRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&Account{}).Where(query, arg).Count(&n).Error
	if err != nil {
		return false, MapGormErrorToDomain(err)
	}
	return n > 0, nil
}

// ListByRole implements repository.AccountRepository.
func (r *accountRepository) ListByRole(ctx context.Context, role string) ([]*dto.AccountRead, error) {
	var accts []Account
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&accts).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapAccountModelToDTO(&accts[i]))
	}
	return result, nil
}

// Remove implements repository.AccountRepository.
func (r *accountRepository) Remove(ctx context.Context, id uuid.UUID, role string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND role = ?", id, role).Delete(&Account{})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

func mapAccountCreateToModel(create dto.AccountCreate) Account {
	return Account{
		ID:           create.ID,
		Name:         create.Name,
		Phone:        create.Phone,
		Aadhaar:      create.Aadhaar,
		Category:     create.Category,
		Role:         create.Role,
		PasswordHash: create.PasswordHash,
	}
}

func mapAccountModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:           acct.ID,
		Name:         acct.Name,
		Phone:        acct.Phone,
		Aadhaar:      acct.Aadhaar,
		Category:     acct.Category,
		Role:         acct.Role,
		Balance:      acct.Balance,
		PasswordHash: acct.PasswordHash,
		Version:      acct.Version,
		CreatedAt:    acct.CreatedAt,
	}
}
