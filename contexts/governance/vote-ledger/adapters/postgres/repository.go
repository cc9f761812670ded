package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ballotbox/contexts/governance/vote-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/vote-ledger/domain/errors"
	"ballotbox/contexts/governance/vote-ledger/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Insert relies on the (voting_id, voter_id) unique index for atomic
// duplicate rejection.
func (r *Repository) Insert(ctx context.Context, record entities.VoteRecord) error {
	row := recordModelFromEntity(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("ledger_repo_insert_failed", err,
			"voting_id", record.VotingID,
			"voter_id", record.VoterID,
		)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, votingID int64, voterID string) (entities.VoteRecord, bool, error) {
	var row recordModel
	err := r.db.WithContext(ctx).
		Where("voting_id = ?", votingID).
		Where("voter_id = ?", voterID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteRecord{}, false, nil
		}
		return entities.VoteRecord{}, false, r.logError("ledger_repo_get_failed", err,
			"voting_id", votingID,
			"voter_id", voterID,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) Delete(ctx context.Context, votingID int64, voterID string) error {
	result := r.db.WithContext(ctx).
		Where("voting_id = ?", votingID).
		Where("voter_id = ?", voterID).
		Delete(&recordModel{})
	if result.Error != nil {
		return r.logError("ledger_repo_delete_failed", result.Error,
			"voting_id", votingID,
			"voter_id", voterID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListByVoter(ctx context.Context, voterID string) ([]entities.VoteRecord, error) {
	var rows []recordModel
	if err := r.db.WithContext(ctx).
		Where("voter_id = ?", voterID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_by_voter_failed", err, "voter_id", voterID)
	}
	items := make([]entities.VoteRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/vote-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("vote ledger repository operation failed", fields...)
	return err
}

type recordModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	VotingID  int64     `gorm:"column:voting_id;uniqueIndex:idx_vote_records_identity"`
	VoterID   string    `gorm:"column:voter_id;uniqueIndex:idx_vote_records_identity"`
	OptionID  int       `gorm:"column:option_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (recordModel) TableName() string {
	return "vote_records"
}

func recordModelFromEntity(record entities.VoteRecord) recordModel {
	row := recordModel{
		ID:        record.RecordID,
		VotingID:  record.VotingID,
		VoterID:   record.VoterID,
		OptionID:  record.OptionID,
		CreatedAt: record.CreatedAt.UTC(),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m recordModel) toEntity() entities.VoteRecord {
	return entities.VoteRecord{
		RecordID:  m.ID,
		VotingID:  m.VotingID,
		OptionID:  m.OptionID,
		VoterID:   m.VoterID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.RecordRepository = (*Repository)(nil)
