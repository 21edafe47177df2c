package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stoneyard/remnant-portal/internal/domain"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// ListRemnants retrieves active, non-deleted remnants matching the filter
func (s *pgStore) ListRemnants(ctx context.Context, filter RemnantFilter) ([]schema.Remnant, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Remnant{}).
		Where("is_active = ?", true).
		Order("id DESC")

	if len(filter.Materials) > 0 {
		query = query.Where("material IN ?", filter.Materials)
	}
	if filter.Stone != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Stone+"%")
	}
	if filter.Status != "" {
		query = query.Where("status ILIKE ?", "%"+filter.Status+"%")
	}
	if filter.Color != "" {
		query = query.Where("LOWER(color) = LOWER(?)", filter.Color)
	}
	if filter.MinWidth != nil {
		query = query.Where("width >= ?", *filter.MinWidth)
	}
	if filter.MinHeight != nil {
		query = query.Where("height >= ?", *filter.MinHeight)
	}
	if owner := domain.NormalizeOwner(filter.Owner); owner != "" {
		query = query.Where("owner_name = ?", owner)
	}

	var remnants []schema.Remnant
	if err := query.Find(&remnants).Error; err != nil {
		return nil, fmt.Errorf("failed to list remnants: %w", err)
	}
	return remnants, nil
}

// ListAllRemnants retrieves the full remnant set including inactive and
// soft-deleted rows
func (s *pgStore) ListAllRemnants(ctx context.Context) ([]schema.Remnant, error) {
	var remnants []schema.Remnant
	err := s.db.WithContext(ctx).
		Unscoped().
		Order("id DESC").
		Find(&remnants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all remnants: %w", err)
	}
	return remnants, nil
}

// GetRemnantByID retrieves a remnant by id
func (s *pgStore) GetRemnantByID(ctx context.Context, id int64) (*schema.Remnant, error) {
	var remnant schema.Remnant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&remnant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get remnant: %w", err)
	}
	return &remnant, nil
}

// UpdateRemnant applies a partial admin update to a remnant
func (s *pgStore) UpdateRemnant(ctx context.Context, id int64, update RemnantUpdate) error {
	fields := map[string]interface{}{}
	if update.Material != nil {
		fields["material"] = *update.Material
	}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.OwnerName != nil {
		fields["owner_name"] = *update.OwnerName
	}
	if len(fields) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).
		Model(&schema.Remnant{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update remnant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRemnantNotFound
	}
	return nil
}

// DeleteRemnant soft-deletes a remnant
func (s *pgStore) DeleteRemnant(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Remnant{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete remnant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRemnantNotFound
	}
	return nil
}

// CreateHoldRequest persists a pending hold and moves the remnant to Pending
// in a single transaction. The remnant row is locked for the duration so
// concurrent create calls on the same remnant resolve to exactly one winner.
func (s *pgStore) CreateHoldRequest(ctx context.Context, remnantID int64, clientName, clientContact string) (*schema.HoldRequest, error) {
	var hold schema.HoldRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var remnant schema.Remnant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", remnantID, true).
			First(&remnant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRemnantNotFound
			}
			return fmt.Errorf("failed to get remnant: %w", err)
		}

		switch remnant.Status {
		case domain.RemnantStatusAvailable:
			// ok
		case domain.RemnantStatusPending:
			return domain.ErrPendingHoldExists
		default:
			return domain.ErrRemnantUnavailable
		}

		var pending int64
		err = tx.Model(&schema.HoldRequest{}).
			Where("remnant_id = ? AND status = ?", remnantID, domain.HoldStatusPending).
			Count(&pending).Error
		if err != nil {
			return fmt.Errorf("failed to count pending holds: %w", err)
		}
		if pending > 0 {
			return domain.ErrPendingHoldExists
		}

		hold = schema.HoldRequest{
			RemnantID:     remnantID,
			ClientName:    clientName,
			ClientContact: clientContact,
			Status:        domain.HoldStatusPending,
		}
		if err := tx.Create(&hold).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrPendingHoldExists
			}
			return fmt.Errorf("failed to create hold request: %w", err)
		}

		err = tx.Model(&schema.Remnant{}).
			Where("id = ?", remnantID).
			Update("status", domain.RemnantStatusPending).Error
		if err != nil {
			return fmt.Errorf("failed to update remnant status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

// ApproveHoldRequest transitions a pending hold to approved and the linked
// remnant to On Hold in a single transaction
func (s *pgStore) ApproveHoldRequest(ctx context.Context, holdID int64, approvedAt time.Time) (*schema.HoldRequest, error) {
	return s.resolveHoldRequest(ctx, holdID, domain.HoldStatusApproved, &approvedAt, domain.RemnantStatusOnHold)
}

// RejectHoldRequest transitions a pending hold to rejected and the linked
// remnant back to Available in a single transaction
func (s *pgStore) RejectHoldRequest(ctx context.Context, holdID int64) (*schema.HoldRequest, error) {
	return s.resolveHoldRequest(ctx, holdID, domain.HoldStatusRejected, nil, domain.RemnantStatusAvailable)
}

// resolveHoldRequest performs a terminal hold transition as a conditional
// update keyed by the pending status, then propagates the remnant status.
// The compare-and-swap makes repeated approve/reject calls fail with
// domain.ErrHoldAlreadyResolved instead of silently re-applying.
func (s *pgStore) resolveHoldRequest(ctx context.Context, holdID int64, holdStatus domain.HoldStatus, approvedAt *time.Time, remnantStatus domain.RemnantStatus) (*schema.HoldRequest, error) {
	var hold schema.HoldRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{"status": holdStatus}
		if approvedAt != nil {
			fields["approved_at"] = *approvedAt
		}

		result := tx.Model(&schema.HoldRequest{}).
			Where("id = ? AND status = ?", holdID, domain.HoldStatusPending).
			Updates(fields)
		if result.Error != nil {
			return fmt.Errorf("failed to update hold request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			err := tx.Where("id = ?", holdID).First(&schema.HoldRequest{}).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrHoldNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to get hold request: %w", err)
			}
			return domain.ErrHoldAlreadyResolved
		}

		if err := tx.Where("id = ?", holdID).First(&hold).Error; err != nil {
			return fmt.Errorf("failed to get hold request: %w", err)
		}

		err := tx.Model(&schema.Remnant{}).
			Where("id = ?", hold.RemnantID).
			Update("status", remnantStatus).Error
		if err != nil {
			return fmt.Errorf("failed to update remnant status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

// ListHoldRequests retrieves all holds joined with remnant display fields
func (s *pgStore) ListHoldRequests(ctx context.Context) ([]schema.HoldRequestWithRemnant, error) {
	var holds []schema.HoldRequestWithRemnant
	err := s.db.WithContext(ctx).
		Model(&schema.HoldRequest{}).
		Select("hold_requests.*, remnants.material AS remnant_material, remnants.name AS remnant_name, remnants.owner_name AS remnant_owner").
		Joins("JOIN remnants ON remnants.id = hold_requests.remnant_id").
		Order("hold_requests.created_at DESC").
		Find(&holds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list hold requests: %w", err)
	}
	return holds, nil
}

// GetUserOwner retrieves the role/owner mapping for a provider subject
func (s *pgStore) GetUserOwner(ctx context.Context, userID string) (*schema.UserOwner, error) {
	var mapping schema.UserOwner
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user owner mapping: %w", err)
	}
	return &mapping, nil
}
